// Package portfolio manages simulated stock portfolios for the quant monitor
// dashboard. It is local-first: the whole state fits in two keys of a
// key-value store and every figure shown is derived from it.
//
// The core functionalities include:
//   - Ledger: the portfolios, their cash and positions, and the mutations
//     (buy, resize, liquidate, set cash) that keep them consistent. Cash never
//     goes negative, positions always hold a positive number of shares, and a
//     rejected mutation leaves the ledger unchanged.
//   - Views: holdings tables with weights and profits, sector allocations and
//     headline summaries, all computed on read from cash and positions.
//   - Market simulation: a seedable random walk of prices standing in for a
//     market feed, and normalized net value series for performance charts.
//   - Instruments: a static catalog of A-share stocks, ETFs and indices that
//     names and classifies positions.
//   - Persistence: LedgerStore reads and writes the ledger through a kv.Store.
//
// This package is the foundation of the `qm` command-line tool.
package portfolio
