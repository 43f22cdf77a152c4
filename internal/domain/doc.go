// Package domain triages free-text Turkish emergency reports.
//
// # Analysis
//
// [Analyzer.Analyze] composes four independent steps over the same text:
//
//	location extraction   landmark -> district -> "X Mahallesi" -> "X Caddesi" -> "X Sokak"
//	event classification  most distinct keyword hits, catalog order breaks ties
//	priority              first keyword hit walking tiers Kritik -> Yüksek -> Orta
//	unit assignment       event -> ordered units, [AFAD] when unmapped
//
// Keyword and landmark matching run on text lowercased with Turkish rules
// ([Fold]), so "İ" folds to "i" and "I" to "ı". Matching is substring based
// with no word boundaries: "sel" also hits inside "selam". District names
// are matched case-sensitively against the original text.
//
// The analyzer is total. Empty or non-Turkish input yields Diğer, Orta,
// [AFAD] and no location.
//
// # Enrichment
//
// A [Report] wraps the analysis of one [Submission]. [Geolocate] places it
// with the fallback chain geocoder -> district centroid -> city centre, and
// [LocateFacility] attaches the nearest emergency facility. Both are
// best-effort: collaborator failures are logged and never returned.
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 hashes of text|source|received_at, so
// replaying a source message produces the same ID. See [generateID].
package domain
