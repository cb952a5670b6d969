// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/uicore/internal/logging"
	"github.com/gogpu/uicore/internal/lru"
)

// Shaper measures runs with HarfBuzz shaping from go-text/typesetting.
//
// A Shaper is safe for concurrent use. The parsed font.Font is shared;
// font.Face and HarfbuzzShaper are not concurrent-safe, so each call
// creates a face and borrows a shaper from a pool.
type Shaper struct {
	font  *font.Font
	pool  sync.Pool
	cache *lru.Cache[advanceKey, float64]
}

type advanceKey struct {
	s    string
	size float64
}

// advanceCacheSize bounds the number of memoised run advances.
const advanceCacheSize = 4096

// NewShaper parses TTF/OTF data.
func NewShaper(data []byte) (*Shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Shaper{
		font: face.Font,
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		cache: lru.New[advanceKey, float64](advanceCacheSize),
	}, nil
}

// CacheStats reports the advance cache counters.
func (s *Shaper) CacheStats() lru.Stats { return s.cache.Stats() }

// Advance implements Measurer.
func (s *Shaper) Advance(str string, size float64) float64 {
	if str == "" || size <= 0 {
		return 0
	}
	key := advanceKey{s: str, size: size}
	if w, ok := s.cache.Get(key); ok {
		return w
	}

	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(s.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	var adv fixed.Int26_6
	for _, g := range out.Glyphs {
		adv += g.Advance
	}
	w := float64(adv) / 64

	s.cache.Set(key, w)
	return w
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

var (
	defaultOnce     sync.Once
	defaultMeasurer Measurer
)

// Default returns a Shaper over Go Regular, or Estimate if the font
// cannot be parsed.
func Default() Measurer {
	defaultOnce.Do(func() {
		sh, err := NewShaper(goregular.TTF)
		if err != nil {
			logging.Logger().Warn("text: default font unavailable, estimating advances", "err", err)
			defaultMeasurer = Estimate
			return
		}
		defaultMeasurer = sh
	})
	return defaultMeasurer
}
