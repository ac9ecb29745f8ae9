// Copyright (c) 2025 OpenForm.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// AnswerKind discriminates the variants of AnswerValue.
type AnswerKind int

const (
	KindAbsent AnswerKind = iota
	KindText
	KindNumber
	KindBool
	KindList
	KindFile
)

func (k AnswerKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindFile:
		return "file"
	}
	return fmt.Sprintf("AnswerKind(%d)", int(k))
}

// FileRef describes an uploaded file. URL points at remote storage, or
// is an inline data URL when the service runs without a file store.
type FileRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// AnswerValue is a tagged union over the value shapes an input surface
// can emit: text, number, bool, a set of selected option strings, or a
// file reference. The zero value is the distinct "unanswered" state;
// an empty string answer is present but empty, which only the required
// rule treats as missing.
type AnswerValue struct {
	Kind   AnswerKind
	Text   string
	Number float64
	Bool   bool
	List   []string
	File   *FileRef
}

func TextAnswer(s string) AnswerValue    { return AnswerValue{Kind: KindText, Text: s} }
func NumberAnswer(n float64) AnswerValue { return AnswerValue{Kind: KindNumber, Number: n} }
func BoolAnswer(b bool) AnswerValue      { return AnswerValue{Kind: KindBool, Bool: b} }
func ListAnswer(vs []string) AnswerValue { return AnswerValue{Kind: KindList, List: vs} }
func FileAnswer(ref FileRef) AnswerValue { return AnswerValue{Kind: KindFile, File: &ref} }

// Absent reports whether no answer was ever recorded.
func (v AnswerValue) Absent() bool { return v.Kind == KindAbsent }

// Empty reports whether the value counts as missing for the required
// rule: absent, an empty string, or an empty selection.
func (v AnswerValue) Empty() bool {
	switch v.Kind {
	case KindAbsent:
		return true
	case KindText:
		return v.Text == ""
	case KindList:
		return len(v.List) == 0
	case KindNumber, KindBool:
		return false
	case KindFile:
		return v.File == nil
	}
	return true
}

// MarshalJSON emits the naked value, matching the answers document
// format: a string, number, bool, array of strings, file object, or
// null when absent.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindAbsent:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	case KindFile:
		return json.Marshal(v.File)
	}
	return nil, fmt.Errorf("unknown answer kind %d", int(v.Kind))
}

// UnmarshalJSON discriminates on the JSON shape. Objects must carry the
// FileRef fields; arrays must contain only strings.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch val := raw.(type) {
	case nil:
		*v = AnswerValue{}
	case string:
		*v = TextAnswer(val)
	case bool:
		*v = BoolAnswer(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return fmt.Errorf("invalid numeric answer: %w", err)
		}
		*v = NumberAnswer(f)
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("answer list may only contain strings, got %T", item)
			}
			list = append(list, s)
		}
		*v = ListAnswer(list)
	case map[string]any:
		var ref FileRef
		if err := json.Unmarshal(data, &ref); err != nil {
			return fmt.Errorf("invalid file answer: %w", err)
		}
		if ref.Name == "" || ref.URL == "" {
			return fmt.Errorf("file answer requires name and url")
		}
		*v = FileAnswer(ref)
	default:
		return fmt.Errorf("unsupported answer shape %T", raw)
	}
	return nil
}

// Equal compares two answer values. List comparison is order
// insensitive: checkbox selections are a set.
func (v AnswerValue) Equal(o AnswerValue) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindAbsent:
		return true
	case KindText:
		return v.Text == o.Text
	case KindNumber:
		return v.Number == o.Number
	case KindBool:
		return v.Bool == o.Bool
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		a := append([]string(nil), v.List...)
		b := append([]string(nil), o.List...)
		sort.Strings(a)
		sort.Strings(b)
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	case KindFile:
		if v.File == nil || o.File == nil {
			return v.File == o.File
		}
		return *v.File == *o.File
	}
	return false
}
