// Package simon implements the Simon64/128 block cipher.
// Simon64/128 has a block size of 8 bytes (64 bits) and a key size of
// 16 bytes (128 bits) with 44 rounds.
//
// The cipher implements crypto/cipher.Block, so standard library modes
// such as CBC compose around it:
//
//	blk, err := simon.NewCipher(key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cbc := cipher.NewCBCEncrypter(blk, iv)
//
// Words are serialized little-endian: block bytes [0:4] hold the left
// word and [4:8] the right word; key bytes [4i:4i+4] hold key word i.
package simon
