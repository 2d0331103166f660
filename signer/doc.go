// Package signer produces the signature headers a private mobile API
// expects on every request: a millisecond request ticket, a trace id, a
// body digest stub, the ladon license token, the gorgon integrity
// signature, the khronos timestamp, the argus primary signature, and the
// pass-through cookie.
//
// GenerateHeaders resolves defaults, invokes every signer over one shared
// canonical view of the request, and returns a complete Bundle:
//
//	bundle, err := signer.GenerateHeaders("aid=1233&app_name=musical_ly", ttcrypt.Payload{}, signer.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bundle.Apply(req.Header)
//
// The khronos header always equals the integer seconds used inside the
// gorgon signature, and the request ticket is the same instant in
// milliseconds. Timestamp, trace id, and cipher IV are resolved once per
// call; tests can pin all three through Config.
//
// All signing is pure computation over the inputs plus read-only constant
// tables loaded once from an embedded asset, so every function here is
// safe for unbounded concurrent use.
package signer
