package extras

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/errs"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/geocoder"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// withinParams are the search-narrowing parameters shared by every geocoder
// convertor.
func withinParams() []*params.Param {
	return []*params.Param{
		{Name: "within", Type: params.TypeStringList,
			Description: "prefecture or municipality names restricting the search"},
		{Name: "within_col_idxs", Type: params.TypeAttributeList,
			Description: "columns holding prefecture or municipality names restricting the search"},
	}
}

// geocodeBase resolves addresses through the installed backend, narrowing
// the search per record when the within columns name an area.
type geocodeBase struct {
	within        []string
	withinColIdxs []int
}

func (g *geocodeBase) preprocGeocode(ctx *convertor.Context) error {
	if !geocoder.Installed() {
		return errs.NewCollaboratorError("no geocoding backend installed")
	}
	var err error
	if g.within, err = ctx.StringList("within"); err != nil {
		return err
	}
	if g.withinColIdxs, err = ctx.InputColumns("within_col_idxs"); err != nil {
		return err
	}
	return nil
}

// searchNode resolves one address. Cells from the within columns narrow the
// search when they end in an administrative suffix; otherwise the static
// within list applies.
func (g *geocodeBase) searchNode(value string, record []string) (*geocoder.Node, error) {
	within := g.within
	var fromRecord []string
	for _, idx := range g.withinColIdxs {
		if idx < 0 || idx >= len(record) || record[idx] == "" {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(record[idx])
		if strings.ContainsRune("都道府県市区町村", last) {
			fromRecord = append(fromRecord, record[idx])
		}
	}
	if len(fromRecord) > 0 {
		within = fromRecord
	}
	return geocoder.SearchNode(value, within)
}

// padDefaults sizes a default-value list to n entries: a single value
// repeats, a short list cycles, a long list truncates.
func padDefaults(defaults []string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if len(defaults) > 0 {
			out[i] = defaults[i%len(defaults)]
		}
	}
	return out
}

var geocodeFromAddressMeta = convertor.Meta{
	Key:         "geocode_from_address",
	Name:        "住所から緯度経度",
	Description: "住所から緯度・経度・住所レベルを生成します。",
	Params: convertor.IOSParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeStringList,
			Description: "values written when the address does not resolve"})...),
}

// GeocodeFromAddress resolves an address column to latitude, longitude and
// address level through the installed backend.
type GeocodeFromAddress struct {
	convertor.InputOutputs
	geocodeBase

	defaults []string
}

// NewGeocodeFromAddress creates a geocode_from_address convertor.
func NewGeocodeFromAddress() convertor.Convertor {
	c := &GeocodeFromAddress{}
	c.Values = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocodeFromAddress) Meta() *convertor.Meta { return &geocodeFromAddressMeta }

// Preproc verifies the backend and the three output columns.
func (c *GeocodeFromAddress) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutputs.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	if len(c.OutputColNames) != 3 {
		return errs.NewConfigError(
			"geocode_from_address needs 3 output column names for latitude, longitude and level, got %d",
			len(c.OutputColNames))
	}
	defaults, err := ctx.StringList("default")
	if err != nil {
		return err
	}
	c.defaults = padDefaults(defaults, 3)
	return nil
}

func (c *GeocodeFromAddress) resolve(record []string, ctx *convertor.Context) ([]string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return nil, errs.NewCollaboratorError("geocoding failed: %v", err)
	}
	if node == nil {
		return c.defaults, nil
	}
	return []string{
		strconv.FormatFloat(node.Latitude, 'f', -1, 64),
		strconv.FormatFloat(node.Longitude, 'f', -1, 64),
		strconv.Itoa(node.Level),
	}, nil
}

var geocoderCodeMeta = convertor.Meta{
	Key:         "geocoder_code",
	Name:        "住所から自治体コード",
	Description: "住所から自治体コードを返します。",
	Params: convertor.IOParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeString, Default: "0",
			Description: "value written when the code cannot be computed"},
		&params.Param{Name: "with_check_digit", Type: params.TypeBool, Default: false,
			Description: "whether to emit the 6-digit code with check digit"})...),
}

// GeocoderCode resolves an address column to a municipality code.
// Prefecture-level results pad the JIS code with 000.
type GeocoderCode struct {
	convertor.InputOutput
	geocodeBase

	withCheckDigit bool
	defaultValue   string
}

// NewGeocoderCode creates a geocoder_code convertor.
func NewGeocoderCode() convertor.Convertor {
	c := &GeocoderCode{}
	c.Value = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocoderCode) Meta() *convertor.Meta { return &geocoderCodeMeta }

// Preproc verifies the backend and resolves the code options.
func (c *GeocoderCode) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	var err error
	if c.withCheckDigit, err = ctx.Bool("with_check_digit"); err != nil {
		return err
	}
	if c.defaultValue, err = ctx.String("default"); err != nil {
		return err
	}
	return nil
}

func (c *GeocoderCode) resolve(record []string, ctx *convertor.Context) (string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return "", errs.NewCollaboratorError("geocoding failed: %v", err)
	}
	if node == nil {
		return c.defaultValue, nil
	}
	if c.withCheckDigit {
		if node.Level < 3 {
			return node.PrefAuthorityCode, nil
		}
		return node.CityAuthorityCode, nil
	}
	if node.Level < 3 {
		return node.PrefJISCode + "000", nil
	}
	return node.CityJISCode, nil
}

var geocoderMunicipalityMeta = convertor.Meta{
	Key:         "geocoder_municipality",
	Name:        "住所から市区町村",
	Description: "住所から市区町村名を返します。",
	Params: convertor.IOSParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeStringList,
			Description: "values written when the municipality cannot be computed"})...),
}

// GeocoderMunicipality resolves an address column to municipality names.
// With two output columns designated cities split into city and ward; with
// one, both names join with a space.
type GeocoderMunicipality struct {
	convertor.InputOutputs
	geocodeBase

	defaults []string
}

// NewGeocoderMunicipality creates a geocoder_municipality convertor.
func NewGeocoderMunicipality() convertor.Convertor {
	c := &GeocoderMunicipality{}
	c.Values = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocoderMunicipality) Meta() *convertor.Meta { return &geocoderMunicipalityMeta }

// Preproc verifies the backend and the one or two output columns.
func (c *GeocoderMunicipality) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutputs.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	if len(c.OutputColNames) < 1 || len(c.OutputColNames) > 2 {
		return errs.NewConfigError(
			"geocoder_municipality needs 1 or 2 output column names, got %d",
			len(c.OutputColNames))
	}
	defaults, err := ctx.StringList("default")
	if err != nil {
		return err
	}
	c.defaults = padDefaults(defaults, len(c.OutputColNames))
	return nil
}

func (c *GeocoderMunicipality) resolve(record []string, ctx *convertor.Context) ([]string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return nil, errs.NewCollaboratorError("geocoding failed: %v", err)
	}

	result := c.defaults
	if node != nil && node.Level >= 3 && node.CityName != "" {
		if node.WardName != "" {
			result = []string{node.CityName, node.WardName}
		} else {
			result = []string{node.CityName}
		}
	}

	if len(c.OutputColNames) == 1 && len(result) > 1 {
		result = []string{strings.Join(result, " ")}
	} else if len(c.OutputColNames) == 2 && len(result) == 1 {
		result = append(result, c.defaults[1])
	}
	return result, nil
}

var geocoderNodeIDMeta = convertor.Meta{
	Key:         "geocoder_nodeid",
	Name:        "住所からノードID",
	Description: "住所から住所ノードIDを返します。",
	Params: convertor.IOParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeString, Default: "",
			Description: "value written when the address does not resolve"})...),
}

// GeocoderNodeID resolves an address column to the backend's node id.
// Later geocoder convertors resolve ids without re-parsing the address.
type GeocoderNodeID struct {
	convertor.InputOutput
	geocodeBase

	defaultValue string
}

// NewGeocoderNodeID creates a geocoder_nodeid convertor.
func NewGeocoderNodeID() convertor.Convertor {
	c := &GeocoderNodeID{}
	c.Value = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocoderNodeID) Meta() *convertor.Meta { return &geocoderNodeIDMeta }

// Preproc verifies the backend.
func (c *GeocoderNodeID) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	var err error
	c.defaultValue, err = ctx.String("default")
	return err
}

func (c *GeocoderNodeID) resolve(record []string, ctx *convertor.Context) (string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return "", errs.NewCollaboratorError("geocoding failed: %v", err)
	}
	if node == nil {
		return c.defaultValue, nil
	}
	return strconv.FormatInt(node.ID, 10), nil
}

var geocoderPostcodeMeta = convertor.Meta{
	Key:         "geocoder_postcode",
	Name:        "住所から郵便番号",
	Description: "住所から郵便番号を返します。",
	Params: convertor.IOParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeString, Default: "0",
			Description: "value written when the postcode cannot be computed"},
		&params.Param{Name: "hiphen", Type: params.TypeBool, Default: false,
			Description: "whether to insert a hyphen after the third digit"})...),
}

// GeocoderPostcode resolves an address column to its postcode.
type GeocoderPostcode struct {
	convertor.InputOutput
	geocodeBase

	hyphen       bool
	defaultValue string
}

// NewGeocoderPostcode creates a geocoder_postcode convertor.
func NewGeocoderPostcode() convertor.Convertor {
	c := &GeocoderPostcode{}
	c.Value = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocoderPostcode) Meta() *convertor.Meta { return &geocoderPostcodeMeta }

// Preproc verifies the backend and resolves the formatting options.
func (c *GeocoderPostcode) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	var err error
	if c.hyphen, err = ctx.Bool("hiphen"); err != nil {
		return err
	}
	c.defaultValue, err = ctx.String("default")
	return err
}

func (c *GeocoderPostcode) resolve(record []string, ctx *convertor.Context) (string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return "", errs.NewCollaboratorError("geocoding failed: %v", err)
	}
	if node == nil || node.Postcode == "" {
		return c.defaultValue, nil
	}
	if c.hyphen && len(node.Postcode) > 3 {
		return node.Postcode[:3] + "-" + node.Postcode[3:], nil
	}
	return node.Postcode, nil
}

var geocoderPrefectureMeta = convertor.Meta{
	Key:         "geocoder_prefecture",
	Name:        "住所から都道府県名",
	Description: "住所から都道府県名を返します。",
	Params: convertor.IOParams(append(withinParams(),
		&params.Param{Name: "default", Type: params.TypeString, Default: "",
			Description: "value written when the prefecture cannot be computed"})...),
}

// GeocoderPrefecture resolves an address column to its prefecture name.
type GeocoderPrefecture struct {
	convertor.InputOutput
	geocodeBase

	defaultValue string
}

// NewGeocoderPrefecture creates a geocoder_prefecture convertor.
func NewGeocoderPrefecture() convertor.Convertor {
	c := &GeocoderPrefecture{}
	c.Value = c.resolve
	return c
}

// Meta implements convertor.Convertor.
func (c *GeocoderPrefecture) Meta() *convertor.Meta { return &geocoderPrefectureMeta }

// Preproc verifies the backend.
func (c *GeocoderPrefecture) Preproc(ctx *convertor.Context) error {
	if err := c.InputOutput.Preproc(ctx); err != nil {
		return err
	}
	if err := c.preprocGeocode(ctx); err != nil {
		return err
	}
	var err error
	c.defaultValue, err = ctx.String("default")
	return err
}

func (c *GeocoderPrefecture) resolve(record []string, ctx *convertor.Context) (string, error) {
	node, err := c.searchNode(record[c.InputColIdx], record)
	if err != nil {
		return "", errs.NewCollaboratorError("geocoding failed: %v", err)
	}
	if node == nil {
		return c.defaultValue, nil
	}
	return node.PrefName, nil
}
