// Package organize owns the single-pass pipeline that sorts a directory's
// direct children into category folders.
//
// A run enumerates one directory level, classifies each regular visible file,
// resolves a collision-free destination name, and either reports the plan
// (dry-run) or executes it (apply). Both modes travel the same decision path,
// so a dry run previews exactly what apply would do to the same snapshot.
// Individual file failures are recorded and skipped; only a missing or
// unreadable target ends a run.
//
// Destination resolution probes the filesystem, so a concurrent writer can
// claim a resolved name before the move lands. Runs are single-threaded and
// moves never replace an existing entry; when a rename loses such a race the
// name is re-resolved a bounded number of times and the file otherwise fails
// individually. The window itself is accepted.
package organize
