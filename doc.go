// Package statement reconciles the raw, unreliable fragments extracted from a
// financial portfolio statement into one internally consistent model.
//
// Several independent extraction backends read the same document and each
// produces its own imperfect view: tabular cell grids, raw text, OCR output.
// This package takes those fragments and produces a single portfolio value,
// a deduplicated securities list, a hierarchical asset-allocation tree and a
// reconciled structured-products subset, together with a machine-checkable
// validation report.
//
// The core functionalities include:
//   - Normalization: parsing heterogeneous numeric and percentage formats
//     (thousands separators as comma or apostrophe, trailing percent signs)
//     into exact values.
//   - Collection: turning raw table grids and raw text into typed candidate
//     records, each tagged with its provenance.
//   - Deduplication: merging candidates that describe the same real-world
//     fact into one canonical record with a robust central-tendency value.
//   - Hierarchy: rebuilding asset class / sub-class / security relationships
//     from flat, ambiguously indented rows.
//   - Reconciliation: cross-checking the declared structured-products total
//     against its itemized securities, repairing gaps explicitly.
//   - Validation: itemized, never-fatal consistency checks between portfolio
//     total, security valuations and allocation percentages.
//
// This package serves as the foundational logic for the `pst` command-line
// tool. Every stage is a total function from one immutable input structure to
// a new output structure; nothing inside the package performs I/O.
package statement
