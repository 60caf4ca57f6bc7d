package sources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant a Node holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is one value of a decoded JSON tree.
//
// A nil *Node means "absent". Every accessor accepts a nil receiver and
// returns another absent value or a zero scalar, so deep paths can be read
// without checking each step.
type Node struct {
	kind   Kind
	flag   bool
	num    json.Number
	text   string
	items  []*Node
	fields *orderedmap.OrderedMap[string, *Node]
}

// Kind reports the variant; absent nodes report KindNull.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

func (n *Node) IsMapping() bool  { return n.Kind() == KindMapping }
func (n *Node) IsSequence() bool { return n.Kind() == KindSequence }

// Has reports whether a mapping carries key, even with a null value.
func (n *Node) Has(key string) bool {
	if !n.IsMapping() {
		return false
	}
	_, ok := n.fields.Get(key)
	return ok
}

// Get descends through mappings by key. Any missing step yields nil.
func (n *Node) Get(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		if !cur.IsMapping() {
			return nil
		}
		next, ok := cur.fields.Get(k)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Index returns the i-th element of a sequence; negative i counts from the end.
func (n *Node) Index(i int) *Node {
	if !n.IsSequence() {
		return nil
	}
	if i < 0 {
		i += len(n.items)
	}
	if i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Elems returns sequence elements, or nil for any other kind.
func (n *Node) Elems() []*Node {
	if !n.IsSequence() {
		return nil
	}
	return n.items
}

// Len is the element count of a sequence or the key count of a mapping.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return n.fields.Len()
	}
	return 0
}

// Keys returns mapping keys in document order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	keys := make([]string, 0, n.fields.Len())
	for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Str returns the text of a string node, or the literal of a number node.
func (n *Node) Str() string {
	switch n.Kind() {
	case KindText:
		return n.text
	case KindNumber:
		return n.num.String()
	}
	return ""
}

// Bool returns the value of a boolean node; anything else is false.
func (n *Node) Bool() bool {
	return n.Kind() == KindBool && n.flag
}

// Interface converts the tree into plain Go values: map[string]any,
// []any, string, json.Number, bool and nil.
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindBool:
		return n.flag
	case KindNumber:
		return n.num
	case KindText:
		return n.text
	case KindSequence:
		out := make([]any, len(n.items))
		for i, it := range n.items {
			out[i] = it.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, n.fields.Len())
		for pair := n.fields.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = pair.Value.Interface()
		}
		return out
	}
	return nil
}

// MarshalJSON writes the node back out, keeping mapping key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind() {
	case KindBool:
		return json.Marshal(n.flag)
	case KindNumber:
		return []byte(n.num.String()), nil
	case KindText:
		return json.Marshal(n.text)
	case KindSequence:
		return json.Marshal(n.items)
	case KindMapping:
		return n.fields.MarshalJSON()
	}
	return []byte("null"), nil
}

var errTrailingData = errors.New("trailing data after top-level value")

// DecodeTree strictly decodes one JSON value. Mapping key order is kept;
// a repeated key keeps its first position and its last value.
func DecodeTree(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	return root, nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case nil:
		return &Node{kind: KindNull}, nil
	case bool:
		return &Node{kind: KindBool, flag: v}, nil
	case json.Number:
		return &Node{kind: KindNumber, num: v}, nil
	case string:
		return &Node{kind: KindText, text: v}, nil
	case json.Delim:
		switch v {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		}
	}
	return nil, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
}

func decodeMapping(dec *json.Decoder) (*Node, error) {
	fields := orderedmap.New[string, *Node]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not string", tok)
		}
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		fields.Set(key, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return &Node{kind: KindMapping, fields: fields}, nil
}

func decodeSequence(dec *json.Decoder) (*Node, error) {
	var items []*Node
	for dec.More() {
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Node{}
	}
	return &Node{kind: KindSequence, items: items}, nil
}
