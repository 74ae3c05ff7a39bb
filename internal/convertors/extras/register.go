// Package extras provides the extended convertor catalog: date extraction,
// era conversion, automatic header mapping, geocoding and scripted
// transforms. Registration is deferred to the first registry miss so
// processes using only the core catalog never pay for it.
package extras

import "github.com/NII-CPS-Center/tablelinker-lib/internal/registry"

// Register adds the extended convertors to the registry.
func Register() {
	registry.Register("auto_mapping_cols", NewAutoMappingCols)
	registry.Register("date_extract", NewDateExtract)
	registry.Register("datetime_extract", NewDatetimeExtract)
	registry.Register("geocode_from_address", NewGeocodeFromAddress)
	registry.Register("geocoder_code", NewGeocoderCode)
	registry.Register("geocoder_municipality", NewGeocoderMunicipality)
	registry.Register("geocoder_nodeid", NewGeocoderNodeID)
	registry.Register("geocoder_postcode", NewGeocoderPostcode)
	registry.Register("geocoder_prefecture", NewGeocoderPrefecture)
	registry.Register("script", NewScript)
	registry.Register("select_row_expr", NewSelectRowExpr)
	registry.Register("to_seireki", NewToSeireki)
	registry.Register("to_wareki", NewToWareki)
}

func init() {
	registry.RegisterLazyLoader(Register)
}
