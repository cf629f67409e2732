package document

// IDField is the key under which the generated identifier is stored and served.
const IDField = "_id"

// Document is a flat entity document (User, Group) as persisted and as
// returned over the wire. The identifier is always carried as a hex string.
type Document map[string]interface{}

// ID returns the document identifier, or "" when unset.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge returns a copy of d with the fields of patch applied on top.
// The identifier of d is kept.
func (d Document) Merge(patch Document) Document {
	out := d.Clone()
	for k, v := range patch {
		if k == IDField {
			continue
		}
		out[k] = v
	}
	return out
}

// Fields returns the document without its identifier.
func (d Document) Fields() Document {
	out := d.Clone()
	delete(out, IDField)
	return out
}
