// Package ledger records when token permission entries were last used so that
// block cooldowns can be enforced across calls.
//
// [Memory] keeps records in process and suits tests and single-node hosts. [Redis]
// shares records between processes; its check-and-record step runs as one Lua script
// so concurrent callers cannot both pass a cooldown window.
//
// Both implement trnnut.UseTracker.
package ledger
