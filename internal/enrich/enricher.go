// Package enrich turns CEPs into flat attribute records using the GeoFusion
// API: geocoding, income, intra-urban segmentation, points of interest,
// consumption potential and sociodemography.
package enrich

import (
	"github.com/escale/cep-enricher/pkg/geofusion"
)

// Attribute keys and sentinel values shared across enrichers. Each enricher
// has its own failure policy, grown organically in the upstream dataset:
// income and segmentation substitute a sentinel, places returns nothing,
// sociodemography records a diagnostic, consumption potential fails the whole
// record. Downstream consumers depend on these exact markers.
const (
	KeyGeocoderError  = "geocoder_error"
	KeyLatitude       = "latitude"
	KeyLongitude      = "longitude"
	KeyIncome         = "renda_domiciliar_provavel"
	KeyCluster        = "seg_intra_cluster"
	KeyRecordError    = "Error"
	KeyIncomeError    = "Income"
	KeySegError       = "Seg. Intra"
	KeyGeocodeFailure = "Error geocoder"
	KeySocioError     = "Error sociodemografia"
	KeyRetriesError   = "error"

	SentinelError      = "Error"
	SentinelNone       = "None"
	SentinelMaxRetries = "max_retries"
	ClusterRural       = "rural"
)

// Namespace prefixes keeping enricher outputs collision-free in the merged
// record.
const (
	PrefixPois        = "pois__"
	PrefixConsumption = "consumption_potential__"
	PrefixSocio       = "sociodemography__"
)

// Record is one input row: a positional index, the CEP to enrich, and the
// raw input fields aligned with the input header. The fields ride along so
// the output table can join enrichment results back onto the full input row.
type Record struct {
	Index  int
	CEP    string
	Fields []string
}

// Attributes is the flat per-record output. Values are numeric measurements
// or string markers.
type Attributes map[string]any

// merge copies src into dst, last write wins.
func merge(dst, src Attributes) {
	for k, v := range src {
		dst[k] = v
	}
}

// Enricher fans one coordinate out to every GeoFusion endpoint family and
// merges the shaped results.
type Enricher struct {
	client geofusion.Client
	params Params
}

// New creates an Enricher for the given client and parameter set.
func New(client geofusion.Client, params Params) *Enricher {
	return &Enricher{client: client, params: params}
}
