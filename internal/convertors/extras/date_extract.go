package extras

import (
	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/dateparser"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

var datetimeExtractMeta = convertor.Meta{
	Key:         "datetime_extract",
	Name:        "日時抽出",
	Description: "文字列から日時表現を抽出します。",
	Params: convertor.IOParams(
		&params.Param{Name: "format", Type: params.TypeString, Default: "%Y-%m-%d %H:%M:%S",
			Description: "strftime format the extracted date and time is rendered with"},
		&params.Param{Name: "default", Type: params.TypeString, Default: "",
			Description: "value written when no usable date is found"},
	),
}

// DatetimeExtract pulls the first date and time expression out of free text
// and renders it with a strftime format. Candidates missing a field the
// format prints are passed over; when none qualifies the default is written.
type DatetimeExtract struct {
	convertor.InputOutput

	format       string
	defaultValue string
}

// NewDatetimeExtract creates a datetime_extract convertor.
func NewDatetimeExtract() convertor.Convertor {
	c := &DatetimeExtract{}
	c.Value = c.extract
	return c
}

// Meta implements convertor.Convertor.
func (c *DatetimeExtract) Meta() *convertor.Meta { return &datetimeExtractMeta }

// Preproc resolves the format options.
func (c *DatetimeExtract) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.format, err = ctx.String("format"); err != nil {
		return err
	}
	c.defaultValue, err = ctx.String("default")
	return err
}

func (c *DatetimeExtract) extract(record []string, ctx *convertor.Context) (string, error) {
	result := dateparser.GetDatetime(record[c.InputColIdx])
	for _, cand := range result.Candidates {
		if s, err := cand.Format(c.format); err == nil {
			return s, nil
		}
	}
	return c.defaultValue, nil
}

var dateExtractMeta = convertor.Meta{
	Key:         "date_extract",
	Name:        "日付抽出",
	Description: "文字列から日付表現を抽出します。",
	Params:      dateExtractParams(),
}

// dateExtractParams keeps existing cell values by default; a date column is
// usually filled in place only where it is blank.
func dateExtractParams() *params.Set {
	set := convertor.IOParams(
		&params.Param{Name: "format", Type: params.TypeString, Default: "%Y-%m-%d",
			Description: "strftime format the extracted date is rendered with"},
		&params.Param{Name: "default", Type: params.TypeString, Default: "",
			Description: "value written when no usable date is found"},
	)
	if p, ok := set.Get("overwrite"); ok {
		p.Default = false
	}
	return set
}

// DateExtract pulls the first date expression out of free text and renders
// it with a strftime format. Time directives in the format always print zero.
type DateExtract struct {
	convertor.InputOutput

	format       string
	defaultValue string
}

// NewDateExtract creates a date_extract convertor.
func NewDateExtract() convertor.Convertor {
	c := &DateExtract{}
	c.Value = c.extract
	return c
}

// Meta implements convertor.Convertor.
func (c *DateExtract) Meta() *convertor.Meta { return &dateExtractMeta }

// Preproc resolves the format options.
func (c *DateExtract) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	var err error
	if c.format, err = ctx.String("format"); err != nil {
		return err
	}
	c.defaultValue, err = ctx.String("default")
	return err
}

func (c *DateExtract) extract(record []string, ctx *convertor.Context) (string, error) {
	result := dateparser.GetDatetime(record[c.InputColIdx])
	for _, cand := range result.Candidates {
		if s, err := cand.FormatDate(c.format); err == nil {
			return s, nil
		}
	}
	return c.defaultValue, nil
}
