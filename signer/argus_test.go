package signer

import (
	"crypto/cipher"
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/ttsign/simon"
	"github.com/vitalvas/ttsign/wire"
)

func testArgusInput(t *testing.T, params string) argusInput {
	t.Helper()

	values, err := url.ParseQuery(params)
	require.NoError(t, err)

	return argusInput{
		dev:       DefaultDevice(),
		query:     params,
		values:    values,
		timestamp: testTimestamp,
		iv:        fixedIV,
	}
}

// openArgus reverses the sealing: base64 decode, split off the IV,
// decrypt under the derived device key, strip padding, decode the wire
// envelope.
func openArgus(t *testing.T, header string, dev Device, deviceID string) wire.Map {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(header)
	require.NoError(t, err)
	require.Greater(t, len(raw), simon.BlockSize)
	require.Zero(t, len(raw)%simon.BlockSize)

	iv := raw[:simon.BlockSize]
	ct := raw[simon.BlockSize:]

	blk, err := simon.NewCipher(argusKey(dev, deviceID))
	require.NoError(t, err)

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(blk, iv).CryptBlocks(plain, ct)

	padding := int(plain[len(plain)-1])
	require.GreaterOrEqual(t, padding, 1)
	require.LessOrEqual(t, padding, simon.BlockSize)

	envelope, err := wire.Decode(plain[:len(plain)-padding])
	require.NoError(t, err)

	return envelope
}

func TestArgusSign(t *testing.T) {
	params := "device_id=7342098471&device_type=SM-G973N&os_version=9&channel=googleplay&version_name=37.0.4"

	header, err := argusSign(testArgusInput(t, params))
	require.NoError(t, err)

	envelope := openArgus(t, header, DefaultDevice(), "7342098471")

	t.Run("iv leads the header value", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(header)
		require.NoError(t, err)
		assert.Equal(t, fixedIV, raw[:simon.BlockSize])
	})

	t.Run("envelope carries the version tag", func(t *testing.T) {
		assert.Equal(t, int64(argusMagic), envelope[1].Int())
	})

	t.Run("envelope carries the identity fields", func(t *testing.T) {
		assert.Equal(t, "1233", envelope[4].String())
		assert.Equal(t, "7342098471", envelope[5].String())
		assert.Equal(t, "1611921764", envelope[6].String())
		assert.Equal(t, "37.0.4", envelope[7].String())
		assert.Equal(t, DefaultSDKVersion, envelope[8].String())
		assert.Equal(t, DefaultSDKVersionCode, envelope[9].Int())
		assert.Equal(t, "android", envelope[11].String())
	})

	t.Run("envelope carries the shifted timestamp", func(t *testing.T) {
		assert.Equal(t, int64(testTimestamp)<<1, envelope[12].Int())
	})

	t.Run("body and query hashes are six bytes", func(t *testing.T) {
		assert.Len(t, envelope[13].Bytes(), envelopeHashSize)
		assert.Len(t, envelope[14].Bytes(), envelopeHashSize)
	})

	t.Run("report sub map ties to the timestamp", func(t *testing.T) {
		report, err := envelope[15].DecodeMap()
		require.NoError(t, err)
		assert.Equal(t, int64(85), report[1].Int())
		assert.Equal(t, int64(170), report[6].Int())
		assert.Equal(t, (int64(testTimestamp)<<1)-310, report[7].Int())
	})

	t.Run("platform sub map derives the app version code", func(t *testing.T) {
		platform, err := envelope[23].DecodeMap()
		require.NoError(t, err)
		assert.Equal(t, "SM-G973N", platform[1].String())
		assert.Equal(t, "9", platform[2].String())
		assert.Equal(t, "googleplay", platform[3].String())
		assert.Equal(t, int64(0x02012800), platform[4].Int())
	})

	t.Run("nonce derives from the iv", func(t *testing.T) {
		assert.Equal(t, int64(0x04030201)&0x7fffffff, envelope[3].Int())
	})
}

func TestArgusSignDefaults(t *testing.T) {
	header, err := argusSign(testArgusInput(t, "aid=1233"))
	require.NoError(t, err)

	envelope := openArgus(t, header, DefaultDevice(), "")

	assert.Equal(t, "", envelope[5].String())
	assert.Equal(t, defaultAppVersion, envelope[7].String())

	platform, err := envelope[23].DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, defaultOSVersion, platform[2].String())
	assert.Equal(t, defaultChannel, platform[3].String())
}

func TestArgusSignDeterminism(t *testing.T) {
	in := testArgusInput(t, testParams)

	a, err := argusSign(in)
	require.NoError(t, err)
	b, err := argusSign(in)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	in.iv = []byte{9, 9, 9, 9, 9, 9, 9, 9}
	c, err := argusSign(in)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestAppVersionCode(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    int64
	}{
		{name: "default version", version: "37.0.4", want: 0x02012800},
		{name: "all components", version: "1.2.3", want: 0x00c20400 << 1},
		{name: "two part version", version: "37.0", want: 0},
		{name: "non numeric", version: "a.b.c", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appVersionCode(tt.version))
		})
	}
}
