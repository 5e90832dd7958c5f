// Package services carries the cross-cutting plumbing shared by pipeline
// components: the error taxonomy that separates run-ending precondition
// failures from recoverable per-file ones, and context annotation for run
// correlation.
//
// Wrap errors with the sentinel that matches how the walker must react;
// errors.Is against the sentinels is the only sanctioned way to branch on
// failure kind.
package services
