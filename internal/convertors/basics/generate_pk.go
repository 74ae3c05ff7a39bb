package basics

import (
	"math/big"

	"github.com/zeebo/xxh3"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// keyCharset excludes visually ambiguous characters (0, 1, O, l).
const keyCharset = "23456789ABCDEFGHIJKLMNPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// keyGenerator derives short, stable key strings from seed values and tracks
// collisions across one run.
type keyGenerator struct {
	seen map[string]string
}

func newKeyGenerator() *keyGenerator {
	return &keyGenerator{seen: map[string]string{}}
}

// shortHash hashes the seed and renders the digest in the key charset.
func shortHash(seed string, length int) string {
	sum := xxh3.Hash128([]byte(seed))
	n := new(big.Int).SetUint64(sum.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(sum.Lo))

	radix := big.NewInt(int64(len(keyCharset)))
	mod := new(big.Int)
	var out []byte
	for n.Sign() > 0 {
		n.DivMod(n, radix, mod)
		out = append([]byte{keyCharset[mod.Int64()]}, out...)
	}
	if len(out) > length {
		out = out[:length]
	}
	return string(out)
}

// genKey returns the key for a seed. A key collision between different seeds
// is an error; the same seed seen twice returns ok=false when uniqueness
// checking is on.
func (g *keyGenerator) genKey(seed string, length int, checkUniqueness bool) (string, bool, error) {
	key := shortHash(seed, length)
	if prev, exists := g.seen[key]; exists {
		if prev != seed {
			return "", false, errs.NewUniquenessError(
				"key collision for %q; increase the length parameter", seed)
		}
		if checkUniqueness {
			return "", false, nil
		}
	}
	g.seen[key] = seed
	return key, true, nil
}

var generatePkMeta = convertor.Meta{
	Key:         "generate_pk",
	Name:        "ユニークキー生成",
	Description: "ユニークキーを生成します。",
	Params: convertor.IOParams(
		&params.Param{Name: "length", Type: params.TypeInt, Default: 6,
			Description: "length of the generated key string"},
		&params.Param{Name: "error_if_not_unique", Type: params.TypeBool, Default: true,
			Description: "whether a repeated seed value aborts the run"},
		&params.Param{Name: "skip_if_not_unique", Type: params.TypeBool, Default: false,
			Description: "whether a repeated seed value drops the record"},
	),
}

// GeneratePk derives a short unique key from a seed column.
type GeneratePk struct {
	convertor.InputOutput

	length           int
	errorIfNotUnique bool
	skipIfNotUnique  bool
	gen              *keyGenerator
}

// NewGeneratePk creates a generate_pk convertor.
func NewGeneratePk() convertor.Convertor {
	c := &GeneratePk{}
	c.Value = c.generate
	return c
}

// Meta implements convertor.Convertor.
func (c *GeneratePk) Meta() *convertor.Meta { return &generatePkMeta }

// Preproc resolves the key options and resets the collision tracker.
func (c *GeneratePk) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.length, err = ctx.Int("length"); err != nil {
		return err
	}
	if c.errorIfNotUnique, err = ctx.Bool("error_if_not_unique"); err != nil {
		return err
	}
	if c.skipIfNotUnique, err = ctx.Bool("skip_if_not_unique"); err != nil {
		return err
	}
	c.gen = newKeyGenerator()
	return nil
}

func (c *GeneratePk) generate(record []string, ctx *convertor.Context) (string, error) {
	seed := record[c.InputColIdx]
	check := c.errorIfNotUnique || c.skipIfNotUnique
	key, ok, err := c.gen.genKey(seed, c.length, check)
	if err != nil {
		return "", err
	}
	if !ok {
		if c.errorIfNotUnique {
			return "", errs.NewUniquenessError("duplicate key generated from %q", seed)
		}
		return "", errs.ErrSkipRecord
	}
	return key, nil
}
