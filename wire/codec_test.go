package wire

import (
	"errors"
	"testing"

	"github.com/go-leo/gox/errorx"
	"github.com/kinbiko/jsonassert"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleDocument() *Document {
	startsWith := &Lambda{
		Parameter: "n",
		Body: &Node{
			Kind:   "call",
			Name:   "StartsWith",
			Target: &Node{Kind: "parameter", Name: "n"},
			Args:   []*Node{{Kind: "constant", Type: "string", Value: `"J"`}},
		},
	}
	adult := &Lambda{
		Parameter: "n",
		Body: &Node{
			Kind:  "compare",
			Op:    "ge",
			Left:  &Node{Kind: "call", Name: "Len", Target: &Node{Kind: "parameter", Name: "n"}},
			Right: &Node{Kind: "constant", Type: "int", Value: "3"},
		},
	}
	return NewDocument(&Specification{
		Kind: "and",
		Left: &Specification{Kind: "adhoc", Predicate: startsWith},
		Right: &Specification{
			Kind:    "not",
			Operand: &Specification{Kind: "adhoc", Predicate: adult},
		},
	})
}

func TestDocumentJSONShape(t *testing.T) {
	data := errorx.Ignore(JSON.Marshal(sampleDocument()))
	jsonassert.New(t).Assertf(string(data), `{
		"version": 1,
		"specification": {
			"kind": "and",
			"left": {
				"kind": "adhoc",
				"predicate": {
					"parameter": "n",
					"body": {
						"kind": "call",
						"name": "StartsWith",
						"target": {"kind": "parameter", "name": "n"},
						"args": [{"kind": "constant", "type": "string", "value": "\"J\""}]
					}
				}
			},
			"right": {
				"kind": "not",
				"operand": {
					"kind": "adhoc",
					"predicate": {
						"parameter": "n",
						"body": {
							"kind": "compare",
							"op": "ge",
							"left": {"kind": "call", "name": "Len", "target": {"kind": "parameter", "name": "n"}},
							"right": {"kind": "constant", "type": "int", "value": "3"}
						}
					}
				}
			}
		}
	}`)
}

func TestCodecsRoundTrip(t *testing.T) {
	Convey("Given a document", t, func() {
		doc := sampleDocument()

		for _, codec := range Codecs() {
			codec := codec
			Convey("When it is encoded with "+codec.Name(), func() {
				data, err := codec.Marshal(doc)
				So(err, ShouldBeNil)
				So(data, ShouldNotBeEmpty)

				Convey("Then decoding restores it", func() {
					var got Document
					So(codec.Unmarshal(data, &got), ShouldBeNil)
					So(&got, ShouldResemble, doc)
				})
			})
		}
	})
}

func TestCodecsRejectEmptyData(t *testing.T) {
	Convey("Decoding nothing fails", t, func() {
		for _, codec := range Codecs() {
			var doc Document
			err := codec.Unmarshal(nil, &doc)
			So(errors.Is(err, ErrEmptyData), ShouldBeTrue)
		}
	})
}

func TestCodecsWrapDecodeErrors(t *testing.T) {
	Convey("Garbage does not decode", t, func() {
		var doc Document
		So(JSON.Unmarshal([]byte("{"), &doc), ShouldNotBeNil)
		So(MessagePack.Unmarshal([]byte{0xc1}, &doc), ShouldNotBeNil)
		So(YAML.Unmarshal([]byte("version: [1"), &doc), ShouldNotBeNil)
		So(Protobuf.Unmarshal([]byte{0xff, 0xff}, &doc), ShouldNotBeNil)
	})
}

func TestCodecNames(t *testing.T) {
	Convey("Codecs are named", t, func() {
		var names []string
		for _, codec := range Codecs() {
			names = append(names, codec.Name())
		}
		So(names, ShouldResemble, []string{"json", "msgpack", "yaml", "protobuf"})
	})
}
