/*
Package tcx parses TCX activity files and scales their power samples.

	            +-------------+
	            |  Document   |
	            |  (Parsing)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Scaler   |           | Result  |
	| (Mutate)  |           | (Stats) |
	+-----------+           +---------+

🎯 Purpose:
- Loads TCX files into a mutable XML tree
- Tolerates leading junk bytes before the XML declaration
- Scales every Watts sample by a uniform factor
- Reports per-file statistics (point count, total, average)

🔄 Flow:
1. Load reads the raw bytes and keeps them for backup
2. Leading BOM/control bytes are stripped, then the XML is parsed
3. Scale walks the tree and rewrites each numeric Watts value
4. WriteToBytes serializes the mutated tree for write-back

⚡ Key Responsibilities:
- XML parsing and serialization
- Namespace-aware element matching
- Numeric conversion and rounding
- Collection of invalid samples for reporting

🤝 Interfaces:
- Document: One parsed file plus its raw bytes
- Scaler: Applies the factor to a document
- ScaleResult: Statistics for one pass

📝 Design Philosophy:
The package touches only what it must. Watts elements are matched by
local name and namespace URI so any prefix binding works, scaled values
are written back as integers, and every other byte of character data is
left exactly as the device wrote it. Parsing failures are errors for the
caller to report; a bad sample inside a good file is only a warning.

🚧 Current Issues & TODOs:
1. Parsing:
  - Strip leading junk bytes ✅
  - Honor declared encodings via charset reader ✅
  - Surface line/column positions for parse errors

2. Scaling:
  - Namespace-aware matching ✅
  - Banker's rounding for midpoints ✅
  - Per-sport factor overrides

🔍 Example:

	doc, err := tcx.Load(ctx, "ride.tcx")
	if err != nil {
		return err // malformed file, caller skips it
	}

	result := tcx.NewScaler(0.5).Scale(ctx, doc)
	fmt.Printf("scaled %d points, avg %.1fW\n", result.Points, result.Average())

	out, err := doc.WriteToBytes()
*/
package tcx
