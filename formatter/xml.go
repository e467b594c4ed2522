package formatter

import (
	"strings"
)

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// BuildXML serializes a departure board to XML
func (rb *ResponseBuilder) BuildXML(board *DepartureBoard) []byte {
	var b strings.Builder
	b.WriteString("<DepartureBoard>")
	writeElement(&b, "ResponseTimestamp", board.ResponseTimestamp)
	writeElement(&b, "StopName", board.StopName)
	writeElement(&b, "StopCode", board.StopCode)
	if board.FeedValid != nil {
		if *board.FeedValid {
			writeElement(&b, "FeedValid", "true")
		} else {
			writeElement(&b, "FeedValid", "false")
		}
	}
	if board.ErrorCondition != nil {
		b.WriteString("<ErrorCondition>")
		writeElement(&b, "Description", board.ErrorCondition.Description)
		b.WriteString("</ErrorCondition>")
	}
	b.WriteString("<Departures>")
	for _, d := range board.Departures {
		writeDepartureXML(&b, d)
	}
	b.WriteString("</Departures>")
	b.WriteString("</DepartureBoard>")
	return []byte(b.String())
}

func writeDepartureXML(b *strings.Builder, d Departure) {
	b.WriteString("<Departure>")
	writeElement(b, "LineRef", d.LineRef)
	writeElement(b, "PublishedLineName", d.PublishedLineName)
	writeElement(b, "VehicleMode", d.VehicleMode)
	writeElement(b, "OperatorRef", d.OperatorRef)
	writeElement(b, "StopPointRef", d.StopPointRef)
	writeElement(b, "StopPointName", d.StopPointName)
	writeElement(b, "PlatformCode", d.PlatformCode)
	writeElement(b, "DatedVehicleJourneyRef", d.DatedJourneyRef)
	writeElement(b, "DirectionRef", d.DirectionRef)
	writeElement(b, "DestinationDisplay", d.DestinationDisplay)
	writeElement(b, "AimedDepartureTime", d.AimedDepartureTime)
	b.WriteString("</Departure>")
}

// writeElement skips empty values.
func writeElement(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">")
}

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
