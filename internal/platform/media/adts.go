package media

import "errors"

// FallbackDuration is reported for audio whose frames cannot be walked.
const FallbackDuration = 42.0

const (
	adtsHeaderLen       = 7
	adtsSamplesPerBlock = 1024
	adtsSyncMask        = 0xF6
	adtsSyncValue       = 0xF0
)

var ErrNotADTS = errors.New("not an ADTS stream")

var adtsSampleRates = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

// ADTSDuration walks the ADTS frame headers of an AAC stream and returns its
// length in seconds. A truncated trailing frame is ignored.
func ADTSDuration(data []byte) (float64, error) {
	offset := skipID3(data)
	samples := 0
	sampleRate := 0
	frames := 0

	for offset+adtsHeaderLen <= len(data) {
		header := data[offset : offset+adtsHeaderLen]
		if header[0] != 0xFF || header[1]&adtsSyncMask != adtsSyncValue {
			break
		}
		rateIndex := int(header[2]>>2) & 0x0F
		if rateIndex >= len(adtsSampleRates) {
			break
		}
		frameLen := int(header[3]&0x03)<<11 | int(header[4])<<3 | int(header[5]>>5)
		if frameLen < adtsHeaderLen || offset+frameLen > len(data) {
			break
		}
		if sampleRate == 0 {
			sampleRate = adtsSampleRates[rateIndex]
		}
		blocks := int(header[6]&0x03) + 1
		samples += blocks * adtsSamplesPerBlock
		frames++
		offset += frameLen
	}

	if frames == 0 || sampleRate == 0 {
		return 0, ErrNotADTS
	}
	return float64(samples) / float64(sampleRate), nil
}

// skipID3 returns the offset just past a leading ID3v2 tag, if any.
func skipID3(data []byte) int {
	if len(data) < 10 || data[0] != 'I' || data[1] != 'D' || data[2] != '3' {
		return 0
	}
	size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
	end := 10 + size
	if data[5]&0x10 != 0 {
		end += 10
	}
	if end > len(data) {
		return len(data)
	}
	return end
}
