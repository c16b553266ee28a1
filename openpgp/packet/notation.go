package packet

// Notation type represents a Notation Data subpacket
// see https://www.rfc-editor.org/rfc/rfc9580#section-5.2.3.24
type Notation struct {
	Name            string
	Value           []byte
	IsCritical      bool
	IsHumanReadable bool
}

// parseNotation decodes the body of a notation data subpacket.
func parseNotation(subpacket []byte, isCritical bool) (*Notation, bool) {
	if len(subpacket) < 8 {
		return nil, false
	}
	nameLength := int(subpacket[4])<<8 | int(subpacket[5])
	valueLength := int(subpacket[6])<<8 | int(subpacket[7])
	if len(subpacket) != nameLength+valueLength+8 {
		return nil, false
	}
	return &Notation{
		IsHumanReadable: (subpacket[0] & 0x80) == 0x80,
		Name:            string(subpacket[8:(nameLength + 8)]),
		Value:           append([]byte(nil), subpacket[(nameLength+8):]...),
		IsCritical:      isCritical,
	}, true
}
