// Package sm3 implements the SM3 cryptographic hash function, producing
// a 32-byte digest from arbitrary input.
//
//	digest := sm3.Sum(data)
//	fmt.Println(hex.EncodeToString(digest[:]))
//
// The hash is total over all byte sequences, including empty input.
package sm3
