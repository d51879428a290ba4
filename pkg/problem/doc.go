// Package problem builds Bongard problems: for one target rule, six followers
// and six rogues that no other rule explains equally well, plus three answers
// of which exactly one obeys the rule.
//
// Generation runs in two bounded rejection-sampling phases. The exhibits
// phase keeps drawing grids until the follower and rogue reservoirs are full
// and the split is unambiguous. The answers phase then draws until it holds a
// fresh follower and two non-followers that were not shown as rogues. Either
// phase exceeding its attempt budget fails with errors.ErrGenerationFailed.
package problem
