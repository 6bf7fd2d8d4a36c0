/*
Package status tracks per-file outcomes and writes results to disk.

	            +-------------+
	            |   Status    |
	            | (Tracking)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Results  |           | Writes  |
	| (Summary) |           | (Disk)  |
	+-----------+           +---------+

🎯 Purpose:
- Records what happened to every candidate file
- Folds results into a batch summary
- Renders aligned, colored console lines
- Lands rewritten content on disk atomically

🔄 Flow:
1. The operation processes a file and builds a FileResult
2. Track records it and mirrors it to the structured log
3. WriteFileAtomic replaces the target through temp+rename
4. Summarize produces the totals the CLI prints at the end

⚡ Key Responsibilities:
- Result collection
- Summary aggregation
- Atomic file replacement
- Status line formatting

🤝 Interfaces:
- Manager: Collects results and writes files
- FileFormatter: Renders results and summaries
- FileResult / Summary: The data being tracked

📝 Design Philosophy:
One FileResult per candidate, always, even for files that were skipped
or held no power samples. The summary is derived from the tracked
results rather than counted on the side, so the console report can
never disagree with what actually happened.

🚧 Current Issues & TODOs:
1. Reporting:
  - Aligned per-file lines ✅
  - Batch summary block ✅
  - Progress bar for folders with hundreds of files

2. Writing:
  - Atomic replace via temp+rename ✅
  - Preserve original file permissions on rewrite

🔍 Example:

	mgr := status.NewManager()

	mgr.Track(ctx, status.FileResult{
		Path:   "/rides/ride.tcx",
		Status: status.StatusScaled,
		Points: 1042,
		Total:  187560,
	})

	sum := mgr.Summarize("/rides", 0.85)
	fmt.Println(status.NewDefaultFileFormatter().FormatSummary(sum))
*/
package status
