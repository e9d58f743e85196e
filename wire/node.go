// Package wire defines the on-the-wire records used to persist and transport
// predicate expressions and specifications, and the codecs that encode them.
//
// Every record is a discriminated union keyed by its Kind field. Only the
// fields relevant to a kind are populated; the rest are omitted on the wire.
package wire

// Version is the current Document version.
const Version = 1

// Node is the encoded form of a single expression node.
type Node struct {
	Kind    string  `json:"kind" msgpack:"kind" yaml:"kind"`
	Op      string  `json:"op,omitempty" msgpack:"op,omitempty" yaml:"op,omitempty"`
	Name    string  `json:"name,omitempty" msgpack:"name,omitempty" yaml:"name,omitempty"`
	Type    string  `json:"type,omitempty" msgpack:"type,omitempty" yaml:"type,omitempty"`
	Value   string  `json:"value,omitempty" msgpack:"value,omitempty" yaml:"value,omitempty"`
	Target  *Node   `json:"target,omitempty" msgpack:"target,omitempty" yaml:"target,omitempty"`
	Left    *Node   `json:"left,omitempty" msgpack:"left,omitempty" yaml:"left,omitempty"`
	Right   *Node   `json:"right,omitempty" msgpack:"right,omitempty" yaml:"right,omitempty"`
	Operand *Node   `json:"operand,omitempty" msgpack:"operand,omitempty" yaml:"operand,omitempty"`
	Source  *Node   `json:"source,omitempty" msgpack:"source,omitempty" yaml:"source,omitempty"`
	Body    *Node   `json:"body,omitempty" msgpack:"body,omitempty" yaml:"body,omitempty"`
	Args    []*Node `json:"args,omitempty" msgpack:"args,omitempty" yaml:"args,omitempty"`
}

// Lambda is the encoded form of a single-parameter predicate.
type Lambda struct {
	Parameter string `json:"parameter" msgpack:"parameter" yaml:"parameter"`
	Body      *Node  `json:"body" msgpack:"body" yaml:"body"`
}

// Specification is the encoded form of a specification node.
type Specification struct {
	Kind      string         `json:"kind" msgpack:"kind" yaml:"kind"`
	Predicate *Lambda        `json:"predicate,omitempty" msgpack:"predicate,omitempty" yaml:"predicate,omitempty"`
	Left      *Specification `json:"left,omitempty" msgpack:"left,omitempty" yaml:"left,omitempty"`
	Right     *Specification `json:"right,omitempty" msgpack:"right,omitempty" yaml:"right,omitempty"`
	Operand   *Specification `json:"operand,omitempty" msgpack:"operand,omitempty" yaml:"operand,omitempty"`
}

// Document is the top-level envelope of an encoded specification.
type Document struct {
	Version       int            `json:"version" msgpack:"version" yaml:"version"`
	Specification *Specification `json:"specification" msgpack:"specification" yaml:"specification"`
}

// NewDocument wraps spec in a Document of the current Version.
func NewDocument(spec *Specification) *Document {
	return &Document{Version: Version, Specification: spec}
}
