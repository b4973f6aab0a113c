// Package processor contains the core logic of a zhuyinaudio run. It loads
// the inventory, checks that the synthesis service is reachable, plans the
// tasks and hands them to the generator, then reports. Each operator mode
// (generate, fix, clean, dry run, statistics, listings) is one method.
package processor
