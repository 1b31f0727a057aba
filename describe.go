package skema

// DescribeText returns the description attached to s. Descriptions survive
// later Optional, Nullable, Default, Catch and Refine wrapping; the outermost
// one wins.
func DescribeText(s *Schema) (string, bool) {
	for s != nil {
		switch s.tag {
		case TagDescribe:
			return s.desc, true
		case TagOptional, TagNullable, TagDefault, TagCatch, TagRefine:
			s = s.inner
		default:
			return "", false
		}
	}
	return "", false
}

// FieldDescriptions maps each described field of an object schema to its
// description, for documentation export.
func FieldDescriptions(s *Schema) (map[string]string, error) {
	obj, err := objectOf("describe", s)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(obj.fields))
	for _, f := range obj.fields {
		if d, ok := DescribeText(f.Schema); ok {
			out[f.Name] = d
		}
	}
	return out, nil
}
