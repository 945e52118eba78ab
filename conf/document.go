package conf

// Document is a settings document that validates itself once loaded.
// It satisfies the Validator and MapDecoder contracts of the config package.
type Document struct {
	Raw       Raw
	Validated *Validated
}

// UnmarshalYAML decodes the document, keeping native key types.
func (d *Document) UnmarshalYAML(data []byte) error {
	return d.Raw.UnmarshalYAML(data)
}

// DecodeMap takes an already decoded document.
func (d *Document) DecodeMap(document map[string]any) error {
	d.Raw = Raw(document)

	return nil
}

// Validate runs Check on the raw settings and keeps the result.
func (d *Document) Validate() error {
	validated, err := Check(d.Raw)
	if err != nil {
		return err
	}

	d.Validated = validated

	return nil
}
