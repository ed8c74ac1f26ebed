// Package sberreport parses the HTML statements produced by the Sberbank
// brokerage and aggregates batches of them into merged views. It is designed
// to be lenient with the markup, strict with the numbers, and explicit about
// everything it could not read.
//
// The core functionalities include:
//   - Statement Loading: Reading a statement into a lenient DOM without any
//     semantic validation, so that truncated or hand-edited exports still
//     yield a usable element tree.
//   - Field and Table Location: Finding the metadata header and the known
//     tables (asset valuation, cash flow, securities portfolio, IIS
//     contributions) by label synonyms rather than fixed positions.
//   - Cell Decoding: Converting locale-specific cell text (comma decimals,
//     non-breaking-space thousands separators, attached currency symbols,
//     parenthesized negatives) into exact decimal values, keeping "absent"
//     distinct from zero.
//   - Aggregation: Loading a directory of statements into a period-ordered
//     set and merging cash flows and security positions across statements
//     under explicit duplication and currency rules.
//
// This package serves as the foundational logic for the `sbr` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth: the statements themselves.
package sberreport
