package signer

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/vitalvas/ttsign/sm3"
)

// ladonSign derives the x-ladon license token: the application id,
// license id, SDK version code, and timestamp packed as big-endian
// 64-bit integers, hashed, then XOR-obfuscated against the static key
// from the constant tables. The timestamp is used at full seconds
// resolution, without bucketing.
func ladonSign(appID, licenseID, sdkVersionCode, timestamp int64) (string, error) {
	t, err := loadTables()
	if err != nil {
		return "", err
	}

	var buf [32]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(appID))
	binary.BigEndian.PutUint64(buf[8:16], uint64(licenseID))
	binary.BigEndian.PutUint64(buf[16:24], uint64(sdkVersionCode))
	binary.BigEndian.PutUint64(buf[24:32], uint64(timestamp))

	digest := sm3.Sum(buf[:])
	for i := range digest {
		digest[i] ^= t.ladon[i]
	}

	return hex.EncodeToString(digest[:]), nil
}
