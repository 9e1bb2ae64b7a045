// Package harness runs reconciliation scenarios written in YAML.
//
// A scenario seeds the store, replays a flow of feed imports and operator
// entries through the engine, and checks the final inventory. Every run
// uses a fresh database, a pinned clock and sequential run ids, so the
// recorded trace is reproducible and can be compared against a golden file.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	today: 2018-08-20
//	setup:
//	  - { name: Widget, price: "$3.19", quantity: 100, date: 2018-08-19 }
//	flow:
//	  - import: |
//	      Widget,$3.50,90,08/21/2018
//	    expect: { inserted: 0, updated: 1, skipped: 0 }
//	  - upsert: { name: Widget, price: "4.00", quantity: 5 }
//	    expect: { decision: updated }
//	  - advance_days: 1
//	assertions:
//	  - type: final_state
//	    name: Widget
//	    expect: { price: "$4.00", quantity: 5, date: 2018-08-20 }
//	  - type: absent
//	    name: Gadget
//	  - type: count
//	    count: 1
//
// Import steps hold feed rows without the header line; the harness adds it.
// An import expected to fail sets expect.error to "format" (a malformed
// price, count or date) or "any".
package harness
