// Package immosim models an office real-estate investment portfolio and
// computes its per-building and aggregate metrics from user-supplied
// assumptions. It is designed to be local-first and auditable: assumptions
// live in a human-readable JSONL file, results are recomputed on every run
// and never stored.
//
// The core functionalities include:
//   - Building Assumptions: a fixed set of named scalar parameters per
//     building (rent, cap rates, LTV, interest rate, occupancy, indexation,
//     capex budget, operating-cost ratio, financing term).
//   - Metrics Calculator: a pure function mapping one building's assumptions
//     to its investment metrics (acquisition value, debt, equity, amortized
//     debt service, occupancy trajectory, indexed revenue, NOI, exit value).
//   - Portfolio Aggregation: summing per-building results into portfolio
//     totals, with per-building failure isolation: one invalid building is
//     reported and skipped, the rest of the run proceeds.
//   - Data Persistence: encoding and decoding of building assumptions to and
//     from a human-readable, version-controllable JSONL format, plus CSV
//     export of the result table.
//
// This package serves as the foundational logic for the `ims` command-line
// tool and its form server.
package immosim
