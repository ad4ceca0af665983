package decode

import "fmt"

const nmeaTagLen = 5

// nmeaTag extracts the 5-character message tag (e.g. "GPGGA") from a
// complete NMEA sentence, used only to key the rate meter; the sentence
// itself is forwarded to the relay sink verbatim and never payload-decoded
// per spec.md §4.3.
func nmeaTag(sentence []byte) (string, error) {
	if len(sentence) < 1+nmeaTagLen {
		return "", fmt.Errorf("nmea: sentence too short for a tag (%d)", len(sentence))
	}
	return string(sentence[1 : 1+nmeaTagLen]), nil
}
