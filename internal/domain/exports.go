package domain

import (
	interfaces "ciphergate/internal/domain/interfaces"
	types "ciphergate/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID        = types.SessionID
	Fingerprint      = types.Fingerprint
	KeyClass         = types.KeyClass
	KeyRecord        = types.KeyRecord
	KeyDerivation    = types.KeyDerivation
	HandshakeRequest = types.HandshakeRequest
	HandshakeResult  = types.HandshakeResult
	Response         = types.Response
	ChatMessage      = types.ChatMessage
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyRegistry       = interfaces.KeyRegistry
	SecretCache       = interfaces.SecretCache
	ExchangeService   = interfaces.ExchangeService
	SignatureVerifier = interfaces.SignatureVerifier
	HandshakeService  = interfaces.HandshakeService
	ChatService       = interfaces.ChatService
	MessageService    = interfaces.MessageService
	IdentityService   = interfaces.IdentityService
	ServerClient      = interfaces.ServerClient
)

const (
	KeyClassExchange  = types.KeyClassExchange
	KeyClassSignature = types.KeyClassSignature

	KeyDerivationRaw  = types.KeyDerivationRaw
	KeyDerivationHKDF = types.KeyDerivationHKDF

	HeaderSessionID = types.HeaderSessionID
	HeaderSignature = types.HeaderSignature
)
