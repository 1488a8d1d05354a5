package content

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

type AnswerKind int

const (
	AnswerText AnswerKind = iota
	AnswerBool
	AnswerNumber
)

// Answer is the canonical answer of a question: a string, a boolean or a
// number. String is the only projection used for comparison.
type Answer struct {
	kind AnswerKind
	text string
	flag bool
	num  float64
}

func TextAnswer(s string) Answer    { return Answer{kind: AnswerText, text: s} }
func BoolAnswer(b bool) Answer      { return Answer{kind: AnswerBool, flag: b} }
func NumberAnswer(n float64) Answer { return Answer{kind: AnswerNumber, num: n} }

func (a Answer) Kind() AnswerKind { return a.kind }

func (a Answer) String() string {
	switch a.kind {
	case AnswerBool:
		return strconv.FormatBool(a.flag)
	case AnswerNumber:
		return strconv.FormatFloat(a.num, 'f', -1, 64)
	default:
		return a.text
	}
}

func (a Answer) IsZero() bool {
	return a.kind == AnswerText && a.text == ""
}

func (a *Answer) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: answer must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*a = Answer{}
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*a = BoolAnswer(b)
	case "!!int", "!!float":
		var n float64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*a = NumberAnswer(n)
	default:
		*a = TextAnswer(node.Value)
	}
	return nil
}

func (a Answer) MarshalYAML() (any, error) {
	switch a.kind {
	case AnswerBool:
		return a.flag, nil
	case AnswerNumber:
		return a.num, nil
	default:
		return a.text, nil
	}
}
