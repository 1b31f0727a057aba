// Package i18n renders Issue messages. English is the default; Japanese is
// built in. Translator swaps are safe while validations run.
package i18n

import (
	"strings"
	"sync/atomic"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected", "received" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

type entry struct{ plain, withData string }

// dictTranslator is the built-in dictionary-based Translator. withData
// templates use {name} placeholders and apply only when every placeholder is
// present in data.
type dictTranslator struct{ dict map[string]entry }

var en = map[string]entry{
	"invalid_type":      {"invalid type", "expected {expected}, received {received}"},
	"required":          {"required", ""},
	"unknown_key":       {"unrecognized key", "unrecognized key '{key}'"},
	"invalid_union":     {"no union alternative matched", ""},
	"invalid_literal":   {"invalid literal value", "invalid literal value, expected {expected}"},
	"invalid_enum":      {"invalid enum value", "invalid enum value, expected {expected}"},
	"refinement_failed": {"invalid input", ""},
	"custom":            {"invalid input", ""},
	"too_deep":          {"maximum depth exceeded", ""},
	"duplicate_key":     {"duplicate key", "duplicate key '{key}'"},
	"parse_error":       {"parse error", ""},
	"truncated":         {"input truncated", ""},
}

var ja = map[string]entry{
	"invalid_type":      {"型が不正です", "{expected} が必要ですが {received} でした"},
	"required":          {"必須です", ""},
	"unknown_key":       {"未知のキーです", "未知のキー '{key}' です"},
	"invalid_union":     {"どの候補にも一致しません", ""},
	"invalid_literal":   {"リテラル値が不正です", "リテラル値が不正です ({expected})"},
	"invalid_enum":      {"列挙値が不正です", "列挙値が不正です ({expected})"},
	"refinement_failed": {"入力が不正です", ""},
	"custom":            {"入力が不正です", ""},
	"too_deep":          {"深さの上限を超えました", ""},
	"duplicate_key":     {"キーが重複しています", "キー '{key}' が重複しています"},
	"parse_error":       {"解析エラー", ""},
	"truncated":         {"打ち切られました", ""},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	// an absent value is reported as a missing requirement
	if code == "invalid_type" && data["received"] == "undefined" {
		code = "required"
	}
	e, ok := t.dict[code]
	if !ok {
		return code
	}
	if e.withData != "" {
		if msg, ok := fill(e.withData, data); ok {
			return msg
		}
	}
	return e.plain
}

func fill(tmpl string, data map[string]string) (string, bool) {
	var b strings.Builder
	for {
		i := strings.IndexByte(tmpl, '{')
		if i < 0 {
			b.WriteString(tmpl)
			return b.String(), true
		}
		j := strings.IndexByte(tmpl[i:], '}')
		if j < 0 {
			b.WriteString(tmpl)
			return b.String(), true
		}
		v, ok := data[tmpl[i+1:i+j]]
		if !ok || v == "" {
			return "", false
		}
		b.WriteString(tmpl[:i])
		b.WriteString(v)
		tmpl = tmpl[i+j+1:]
	}
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { SetLanguage("en") }

// SetLanguage switches the built-in Translator language ("en"/"ja").
// Unknown languages select English.
func SetLanguage(lang string) {
	d := en
	if lang == "ja" {
		d = ja
	}
	current.Store(&holder{tr: dictTranslator{dict: d}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	if tr == nil {
		SetLanguage("en")
		return
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
