package accounts

// CanModify reports whether actingUserID may mutate a record written by
// authorID in an account administered by adminID.
func CanModify(actingUserID, authorID, adminID string) bool {
	if actingUserID == "" {
		return false
	}
	return actingUserID == authorID || actingUserID == adminID
}
