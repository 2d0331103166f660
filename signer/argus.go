package signer

import (
	"crypto/cipher"
	"encoding/base64"
	"encoding/binary"
	"net/url"
	"strconv"
	"strings"

	"github.com/vitalvas/ttsign/simon"
	"github.com/vitalvas/ttsign/sm3"
	"github.com/vitalvas/ttsign/wire"
)

// argusMagic is the envelope version tag carried in field 1.
const argusMagic = 0x20200929 << 1

// envelopeHashSize is the width of the body and query hashes carried in
// the envelope.
const envelopeHashSize = 6

// argusInput collects everything the primary signature covers.
type argusInput struct {
	dev    Device
	query  string
	values url.Values

	// bodyDigest is the raw digest of the canonical body, nil when the
	// request has no body.
	bodyDigest []byte

	timestamp int64
	iv        []byte
}

// argusSign builds the structured envelope, encodes it, and encrypts it
// in chained mode under a device-derived key. The header value is the IV
// concatenated with the ciphertext, base64-encoded.
func argusSign(in argusInput) (string, error) {
	dev := in.dev

	deviceID := in.values.Get("device_id")
	if deviceID == "" {
		deviceID = dev.DeviceID
	}

	versionName := queryValue(in.values, "version_name", dev.AppVersion)

	envelope := wire.Map{
		1:  wire.Int(argusMagic),
		2:  wire.Int(2),
		3:  wire.Int(int64(binary.LittleEndian.Uint32(in.iv[:4]) & 0x7fffffff)),
		4:  wire.String(strconv.FormatInt(dev.AppID, 10)),
		5:  wire.String(deviceID),
		6:  wire.String(strconv.FormatInt(dev.LicenseID, 10)),
		7:  wire.String(versionName),
		8:  wire.String(dev.SDKVersion),
		9:  wire.Int(dev.SDKVersionCode),
		10: wire.Bytes(make([]byte, 8)),
		11: wire.String("android"),
		12: wire.Int(in.timestamp << 1),
		13: wire.Bytes(envelopeHash(in.bodyDigest)),
		14: wire.Bytes(envelopeHash([]byte(in.query))),
		15: wire.Nested(wire.Map{
			1: wire.Int(85),
			2: wire.Int(85),
			3: wire.Int(85),
			5: wire.Int(85),
			6: wire.Int(170),
			7: wire.Int((in.timestamp << 1) - 310),
		}),
		16: wire.String(dev.SecDeviceID),
		20: wire.String("none"),
		21: wire.Int(738),
		23: wire.Nested(wire.Map{
			1: wire.String(in.values.Get("device_type")),
			2: wire.String(queryValue(in.values, "os_version", defaultOSVersion)),
			3: wire.String(queryValue(in.values, "channel", defaultChannel)),
			4: wire.Int(appVersionCode(versionName)),
		}),
		25: wire.Int(2),
	}

	encoded, err := envelope.Encode()
	if err != nil {
		return "", err
	}

	key := argusKey(dev, deviceID)
	blk, err := simon.NewCipher(key)
	if err != nil {
		return "", err
	}

	padded := padBlocks(encoded)
	out := make([]byte, simon.BlockSize+len(padded))
	copy(out, in.iv)
	cipher.NewCBCEncrypter(blk, in.iv).CryptBlocks(out[simon.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// argusKey derives the envelope cipher key from the device context.
func argusKey(dev Device, deviceID string) []byte {
	material := deviceID + "\x00" +
		strconv.FormatInt(dev.AppID, 10) + "\x00" +
		strconv.FormatInt(dev.LicenseID, 10)
	digest := sm3.Sum([]byte(material))

	return digest[:simon.KeySize]
}

// envelopeHash digests the given bytes and truncates to the envelope hash
// width. Absent input hashes as 16 zero bytes.
func envelopeHash(data []byte) []byte {
	if len(data) == 0 {
		data = make([]byte, 16)
	}

	digest := sm3.Sum(data)

	return digest[:envelopeHashSize]
}

// appVersionCode derives the numeric app version carried in the platform
// sub-map from a dotted "major.minor.patch" version name: the hex digits
// of patch*4, minor*16, and major*4 are concatenated with a trailing
// "00", left-zero-padded to eight digits, read as a big-endian word, and
// shifted left one bit. Unparseable names yield zero.
func appVersionCode(versionName string) int64 {
	parts := strings.Split(versionName, ".")
	if len(parts) != 3 {
		return 0
	}

	major, err1 := strconv.Atoi(parts[0])
	minor, err2 := strconv.Atoi(parts[1])
	patch, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}

	s := strconv.FormatInt(int64(patch*4), 16) +
		strconv.FormatInt(int64(minor*16), 16) +
		strconv.FormatInt(int64(major*4), 16) + "00"
	if len(s) > 8 {
		return 0
	}
	s = strings.Repeat("0", 8-len(s)) + s

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}

	return int64(v) << 1
}

// queryValue returns the query parameter value or the fallback when the
// parameter is absent or empty.
func queryValue(values url.Values, key, fallback string) string {
	if v := values.Get(key); v != "" {
		return v
	}

	return fallback
}

// padBlocks appends PKCS#7 padding up to the next cipher block boundary.
func padBlocks(data []byte) []byte {
	n := simon.BlockSize - len(data)%simon.BlockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}

	return padded
}
