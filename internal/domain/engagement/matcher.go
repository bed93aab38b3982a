package engagement

import "strings"

// bodyMatchPrefixLen is how much of a content item's body/reply text is used
// for the substring overlap rule.
const bodyMatchPrefixLen = 50

// MatchContent reconciles locally authored content items against an
// externally fetched engagement listing. For each item it claims the first
// unclaimed record satisfying, in priority order:
//
//  1. permalink submission-id identity, or
//  2. same subreddit plus case-insensitive title/body substring overlap.
//
// Every input item appears exactly once in the output, in input order, with
// a nil Engagement when nothing plausible was found. A record is claimed by
// at most one item per pass; ties resolve to the first item in input order.
// This is deliberately a first-plausible-match heuristic, not a best-match
// ranker: downstream expectations are built around the looser semantics.
func MatchContent(items []ContentItem, records []Record) []MatchedContentItem {
	matched := make([]MatchedContentItem, 0, len(items))
	claimed := make([]bool, len(records))

	for _, item := range items {
		idx := findMatch(item, records, claimed)
		if idx < 0 {
			matched = append(matched, MatchedContentItem{Item: item})
			continue
		}
		claimed[idx] = true
		rec := records[idx]
		matched = append(matched, MatchedContentItem{Item: item, Engagement: &rec})
	}

	return matched
}

func findMatch(item ContentItem, records []Record, claimed []bool) int {
	if id := submissionID(item.ContentURL()); id != "" {
		for i, rec := range records {
			if claimed[i] {
				continue
			}
			if submissionID(rec.Permalink) == id {
				return i
			}
		}
	}

	for i, rec := range records {
		if claimed[i] {
			continue
		}
		if textOverlap(item, rec) {
			return i
		}
	}

	return -1
}

// submissionID extracts the Reddit submission id segment from a permalink or
// source URL, e.g. "abc123" from "/r/saas/comments/abc123/how_to_grow/".
func submissionID(rawURL string) string {
	const marker = "/comments/"
	i := strings.Index(rawURL, marker)
	if i < 0 {
		return ""
	}
	rest := rawURL[i+len(marker):]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.IndexByte(rest, '?'); j >= 0 {
		rest = rest[:j]
	}
	return strings.ToLower(strings.TrimSpace(rest))
}

func textOverlap(item ContentItem, rec Record) bool {
	if !strings.EqualFold(strings.TrimSpace(item.ContentSubreddit()), strings.TrimSpace(rec.Subreddit)) {
		return false
	}

	itemTitle := strings.ToLower(strings.TrimSpace(item.ContentTitle()))
	recTitle := strings.ToLower(strings.TrimSpace(rec.Title))

	if itemTitle != "" && recTitle != "" {
		if strings.Contains(recTitle, itemTitle) || strings.Contains(itemTitle, recTitle) {
			return true
		}
	}

	body := strings.ToLower(strings.TrimSpace(item.ContentBody()))
	if body == "" || recTitle == "" {
		return false
	}
	if len(body) > bodyMatchPrefixLen {
		body = body[:bodyMatchPrefixLen]
	}
	return strings.Contains(recTitle, body)
}
