package auth

// CanModify is the ownership predicate applied before any mutation of an
// owned resource: the actor may modify it only if they created it. Every
// route performing an ownership check goes through this function so the rule
// cannot drift between endpoints.
func CanModify(actorID, ownerID int) bool {
	return actorID == ownerID
}
