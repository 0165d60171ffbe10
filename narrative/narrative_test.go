package narrative

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	p := NewParser("#", []string{"else if", "if", "else"})

	tests := []struct {
		input   string
		want    Line
		problem bool
	}{
		{"# 概要", Line{Kind: KindHeading, Level: 1, Text: "概要"}, false},
		{"### 詳細", Line{Kind: KindHeading, Level: 3, Text: "詳細"}, false},
		{"#", Line{Kind: KindHeading, Level: 1, Text: ""}, false},
		{"if 入力あり", Line{Kind: KindBranch, Keyword: "if", Text: "入力あり"}, false},
		{"else if", Line{Kind: KindBranch, Keyword: "else if", Text: ""}, false},
		{"else", Line{Kind: KindBranch, Keyword: "else", Text: ""}, false},
		{"iffy", Line{Kind: KindText, Text: "iffy"}, false},
		{"elsewhere", Line{Kind: KindText, Text: "elsewhere"}, false},
		{"変数A = \"365\"", Line{Kind: KindAssignment, Text: "変数A = \"365\"", Assignment: &Assignment{Name: "変数A", Value: "\"365\""}}, false},
		{"[入力] 数量 = n", Line{Kind: KindAssignment, Text: "[入力] 数量 = n", Assignment: &Assignment{Category: "入力", Name: "数量", Value: "n"}}, false},
		{"a=b", Line{Kind: KindAssignment, Text: "a=b", Assignment: &Assignment{Name: "a", Value: "b"}}, false},
		{"x == y", Line{Kind: KindText, Text: "x == y"}, false},
		{"x != y", Line{Kind: KindText, Text: "x != y"}, false},
		{"x <= y", Line{Kind: KindText, Text: "x <= y"}, false},
		{"x += 1", Line{Kind: KindText, Text: "x += 1"}, false},
		{"= 1", Line{Kind: KindText, Text: "= 1"}, true},
		{"name =", Line{Kind: KindText, Text: "name ="}, true},
		{"[cat name = 1", Line{Kind: KindText, Text: "[cat name = 1"}, true},
		{"[] name = 1", Line{Kind: KindText, Text: "[] name = 1"}, true},
		{"  ただの文章  ", Line{Kind: KindText, Text: "ただの文章"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, problem := p.Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if (problem != "") != tt.problem {
				t.Errorf("Parse(%q) problem = %q, want problem %v", tt.input, problem, tt.problem)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindAssignment.String(); got != "assignment" {
		t.Errorf("KindAssignment.String() = %q, want %q", got, "assignment")
	}
	if got := Kind(42).String(); got != "unknown" {
		t.Errorf("Kind(42).String() = %q, want %q", got, "unknown")
	}
}
