package reveal

import "regexp"

var youtubeIDPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// YoutubeVideoID extracts the 11-character video id from a YouTube URL in
// any of the common forms (watch?v=, youtu.be/, embed/, ...). Returns ""
// when the URL does not carry one.
func YoutubeVideoID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return ""
	}
	return m[2]
}
