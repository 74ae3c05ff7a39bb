package basics

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

func widthParams() *params.Set {
	return convertor.IOParams(
		&params.Param{Name: "kana", Type: params.TypeBool, Default: true,
			Description: "whether kana characters are converted"},
		&params.Param{Name: "ascii", Type: params.TypeBool, Default: true,
			Description: "whether letters and symbols are converted"},
		&params.Param{Name: "digit", Type: params.TypeBool, Default: true,
			Description: "whether digits are converted"},
		&params.Param{Name: "ignore_chars", Type: params.TypeString, Default: "",
			Description: "characters excluded from conversion"},
	)
}

var toHankakuMeta = convertor.Meta{
	Key:         "to_hankaku",
	Name:        "全角→半角変換",
	Description: "全角文字を半角文字に変換します。",
	Params:      widthParams(),
}

// ToHankaku converts full-width characters to their half-width forms.
type ToHankaku struct {
	widthBase
}

// NewToHankaku creates a to_hankaku convertor.
func NewToHankaku() convertor.Convertor {
	c := &ToHankaku{}
	c.narrow = true
	c.Value = c.convert
	return c
}

// Meta implements convertor.Convertor.
func (c *ToHankaku) Meta() *convertor.Meta { return &toHankakuMeta }

var toZenkakuMeta = convertor.Meta{
	Key:         "to_zenkaku",
	Name:        "半角→全角変換",
	Description: "半角文字を全角文字に変換します。",
	Params:      widthParams(),
}

// ToZenkaku converts half-width characters to their full-width forms.
// Half-width kana with voicing marks compose into single characters.
type ToZenkaku struct {
	widthBase
}

// NewToZenkaku creates a to_zenkaku convertor.
func NewToZenkaku() convertor.Convertor {
	c := &ToZenkaku{}
	c.narrow = false
	c.Value = c.convert
	return c
}

// Meta implements convertor.Convertor.
func (c *ToZenkaku) Meta() *convertor.Meta { return &toZenkakuMeta }

// widthBase holds the selective width conversion shared by both directions.
type widthBase struct {
	convertor.InputOutput

	narrow      bool
	kana        bool
	ascii       bool
	digit       bool
	ignoreChars map[rune]bool
}

// Preproc resolves the character class flags.
func (c *widthBase) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.kana, err = ctx.Bool("kana"); err != nil {
		return err
	}
	if c.ascii, err = ctx.Bool("ascii"); err != nil {
		return err
	}
	if c.digit, err = ctx.Bool("digit"); err != nil {
		return err
	}
	ignore, err := ctx.String("ignore_chars")
	if err != nil {
		return err
	}
	c.ignoreChars = map[rune]bool{}
	for _, r := range ignore {
		c.ignoreChars[r] = true
	}
	return nil
}

func (c *widthBase) convert(record []string, ctx *convertor.Context) (string, error) {
	value := record[c.InputColIdx]
	var b strings.Builder
	b.Grow(len(value))

	// Runs of convertible characters are transformed together so that
	// half-width kana followed by a voicing mark composes into one rune.
	var run []rune
	var runKana bool
	flush := func() {
		if len(run) == 0 {
			return
		}
		s := string(run)
		if c.narrow {
			s = width.Narrow.String(s)
		} else if runKana {
			s = norm.NFKC.String(s)
		} else {
			s = width.Widen.String(s)
		}
		b.WriteString(s)
		run = run[:0]
	}

	for _, r := range value {
		convertible, isKana := c.classify(r)
		if !convertible || c.ignoreChars[r] {
			flush()
			b.WriteRune(r)
			continue
		}
		if len(run) > 0 && isKana != runKana {
			flush()
		}
		runKana = isKana
		run = append(run, r)
	}
	flush()
	return b.String(), nil
}

// classify reports whether a rune belongs to an enabled conversion class,
// and whether that class is kana.
func (c *widthBase) classify(r rune) (convertible, isKana bool) {
	switch {
	case isDigitRune(r, c.narrow):
		return c.digit, false
	case isKanaRune(r, c.narrow):
		return c.kana, true
	case isAsciiRune(r, c.narrow):
		return c.ascii, false
	}
	return false, false
}

func isDigitRune(r rune, narrow bool) bool {
	if narrow {
		return r >= '０' && r <= '９'
	}
	return r >= '0' && r <= '9'
}

func isKanaRune(r rune, narrow bool) bool {
	if narrow {
		// full-width katakana and its punctuation
		return r >= 0x30A1 && r <= 0x30FC ||
			strings.ContainsRune("゛゜、。「」・ー", r)
	}
	// half-width katakana block
	return r >= 0xFF61 && r <= 0xFF9F
}

func isAsciiRune(r rune, narrow bool) bool {
	if narrow {
		// full-width ASCII variants minus digits, plus ideographic space
		return r == 0x3000 ||
			(r >= 0xFF01 && r <= 0xFF5E && !(r >= '０' && r <= '９'))
	}
	return r == ' ' || (r >= 0x21 && r <= 0x7E && !(r >= '0' && r <= '9'))
}
