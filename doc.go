// gitredate rewrites the commit dates of a linear git history into a
// synthetic, evenly spread evening schedule.
//
// [GenerateTimes] produces one timestamp per commit across an inclusive day
// window. [RedateLinearHistory] rewrites the dates in place, keeping trees,
// messages and ancestry. [RebuildLinearHistory] replays the history as a
// brand-new chain from an empty root.
//
// See [NewPlan] for wiring either rewrite to a repository branch.
package gitredate
