/*
Package operation implements the batch runs over a working folder.

	            +-------------+
	            |  Operation  |
	            | (Pipeline)  |
	            +------+------+
	                   |
	    +---------+----+----+---------+
	    |         |         |         |
	+---+---+ +---+---+ +---+----+ +--+-----+
	| Scale | | Status| | Restore| | Runner |
	+-------+ +-------+ +--------+ +--------+

🎯 Purpose:
- Enumerates candidate files in the working folder
- Scales power samples file by file
- Previews a run without touching disk
- Restores originals from their backups

🔄 Flow (scale):
1. Candidates lists matching files, sorted by name
2. Each file is loaded and its raw bytes backed up
3. The scaler rewrites power samples in memory
4. The result is written back atomically and tracked

⚡ Key Responsibilities:
- Candidate enumeration
- Per-file error isolation
- Backup before any rewrite
- Result tracking and reporting

🤝 Interfaces:
- Operation: One executable unit of work
- Options: Collaborators shared by all operations
- Runner: Timing and cancellation around an operation

📝 Design Philosophy:
One file's problem is never the batch's problem. Every candidate gets
exactly one result, failures included, and the only ordering is name
order so runs are reproducible. Nothing on disk changes until the
original bytes are safely copied aside.

🚧 Current Issues & TODOs:
1. Processing:
  - Per-file isolation ✅
  - Backup before mutation ✅
  - Cancellation between files ✅

2. Reporting:
  - Aligned per-file lines ✅
  - Progress output for very large folders

🔍 Example:

	op, err := operation.NewScaleOperation(operation.Options{
		Config:     cfg,
		Backup:     backupMgr,
		StatusMgr:  statusMgr,
		UserLogger: ul,
		Logger:     &logger,
	})
	if err != nil {
		return err
	}

	return operation.NewRunner(&logger).Run(ctx, op)
*/
package operation
