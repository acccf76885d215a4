package service

import (
	"context"
	"net/url"
	"strings"
)

// Translation is a translated phrase with its romanised reading.
type Translation struct {
	Text     string `json:"text"`
	Phonetic string `json:"phonetic"`
}

// Translator turns traveller phrases into the destination language.
type Translator interface {
	Translate(ctx context.Context, text string) (Translation, error)
}

// DictionaryTranslator answers from a small built-in phrasebook. Input that
// contains a known phrase returns that phrase's entry; anything else is
// echoed with a marker and a hint to open the full translator.
type DictionaryTranslator struct {
	phrases []phrase
}

type phrase struct {
	key string
	Translation
}

// NewDictionaryTranslator returns the zh-TW to Japanese phrasebook.
func NewDictionaryTranslator() *DictionaryTranslator {
	return &DictionaryTranslator{phrases: []phrase{
		{"你好", Translation{Text: "こんにちは", Phonetic: "Konnichiwa"}},
		{"謝謝", Translation{Text: "ありがとう", Phonetic: "Arigatou"}},
		{"多少錢", Translation{Text: "いくらですか", Phonetic: "Ikura desu ka"}},
		{"好吃", Translation{Text: "おいしい", Phonetic: "Oishii"}},
	}}
}

// Translate never fails.
func (d *DictionaryTranslator) Translate(_ context.Context, text string) (Translation, error) {
	if strings.TrimSpace(text) == "" {
		return Translation{Text: "..."}, nil
	}
	for _, p := range d.phrases {
		if strings.Contains(text, p.key) {
			return p.Translation, nil
		}
	}
	return Translation{
		Text:     "[日文]: " + text,
		Phonetic: "(點擊下方按鈕開啟 Google 翻譯)",
	}, nil
}

// TranslateURL links to Google Translate with text pre-filled for Japanese.
func TranslateURL(text string) string {
	return "https://translate.google.com/?sl=auto&tl=ja&text=" + url.QueryEscape(text) + "&op=translate"
}
