package dashboard

// pushTag moves tag to the front of list, removing any earlier occurrence,
// and truncates the result to limit entries.
func pushTag(list []string, tag string, limit int) []string {
	if tag == "" || limit <= 0 {
		return list
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, tag)
	for _, existing := range list {
		if existing == tag {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
