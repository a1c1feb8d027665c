// Package domain models household water-borne disease risk assessments and
// the community reference data served alongside them.
//
// # Catalogs
//
// An assessment is built from three fixed catalogs. Each entry carries a
// stable identifier (used on the wire), a display label, and a non-negative
// integer weight:
//
//	Symptoms (multi-select, 8 entries, weights 1–5):
//	  diarrhea 3, vomiting 3, fever 2, dehydration 4,
//	  abdominal_pain 2, nausea 1, fatigue 1, blood_stool 5
//	Water source (single-select, 6 entries, weights 0–5):
//	  treated 0, well 2, public_well 3, river 5, pond 4, unknown 3
//	Recent rainfall (single-select, 4 entries, weights 0–4):
//	  none 0, light 1, moderate 2, heavy 4
//
// Catalogs are immutable. Accessors hand out copies so callers cannot
// change the weights the engine scores with.
//
// # Scoring
//
// The total score is the sum of the selected symptom weights plus the water
// source weight plus the rainfall weight. Symptom selection is a set: a
// repeated identifier counts once. Identifiers that do not resolve contribute
// zero rather than failing, so stale selections still score.
//
// Tier thresholds, lower bound inclusive:
//
//	score ≤ 3      Low
//	3 < score ≤ 8  Medium
//	score > 8      High
//
// The highest reachable score is 30 (all symptoms, river, heavy rain). The
// progress display uses a fixed scale of 20 and saturates at 100%; the engine
// itself never clamps. See [NewScoreDisplay].
//
// # Reports
//
// A [CaseReport] is a self-reported illness case. Name, village and a
// symptom description are required. Reports are validated, acknowledged and
// forwarded; this service never stores them.
//
// # Dashboard
//
// Dashboard and overview figures are static reference series for the
// monitored villages. They are not derived from submitted reports.
package domain
