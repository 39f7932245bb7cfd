// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n holds the visitor's display language and the positional
// text selector used by every view.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/sohoj8245-gif/portfolio/internal/kv"
)

// Language is a supported display language code.
type Language string

// Supported languages. English is the first language and the default.
const (
	English Language = "en"
	Bangla  Language = "bn"
)

// DefaultLanguage is used when nothing valid is stored.
const DefaultLanguage = English

// SupportedLanguages lists the languages in positional order for T.
var SupportedLanguages = []Language{English, Bangla}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Bengali,
})

// ParseLanguage maps a language code, BCP 47 tag, or Accept-Language
// header value to a supported Language. The second result is false when
// nothing supported matched, in which case DefaultLanguage is returned.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage, false
	}

	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage, false
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage, false
	}
	return SupportedLanguages[idx], true
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == English || l == Bangla
}

// Other returns the language a toggle switches to.
func (l Language) Other() Language {
	if l == English {
		return Bangla
	}
	return English
}

// NativeName returns the language name written in that language.
func (l Language) NativeName() string {
	if l == Bangla {
		return "বাংলা"
	}
	return "English"
}

// Locale is the visitor's active display language, persisted in a kv.Store.
type Locale struct {
	mu    sync.RWMutex
	store kv.Store
	lang  Language
}

// NewLocale restores the language from store, defaulting to English when
// the key is missing or holds an unsupported value.
func NewLocale(store kv.Store) *Locale {
	lang := DefaultLanguage
	if v, ok := store.Get(kv.KeyLanguage); ok && Language(v).Valid() {
		lang = Language(v)
	}
	return &Locale{store: store, lang: lang}
}

// Language returns the active language.
func (l *Locale) Language() Language {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// Set changes and persists the active language.
func (l *Locale) Set(lang Language) error {
	if !lang.Valid() {
		return fmt.Errorf("unsupported language %q", lang)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Set(kv.KeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("persisting language: %w", err)
	}
	l.lang = lang
	return nil
}

// Toggle switches between English and Bangla and returns the new language.
func (l *Locale) Toggle() (Language, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.lang.Other()
	if err := l.store.Set(kv.KeyLanguage, string(next)); err != nil {
		return l.lang, fmt.Errorf("persisting language: %w", err)
	}
	l.lang = next
	return next, nil
}

// T returns en when the active language is English and bn otherwise.
func (l *Locale) T(en, bn string) string {
	if l.Language() == English {
		return en
	}
	return bn
}
