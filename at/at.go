// Package at encodes commands for, and decodes replies from, the HC-08
// Bluetooth LE serial module. Nothing in this package performs I/O.
package at

const (
	// Terminal Control
	CRLF = "\r\n"

	// Acknowledgement
	OK = "OK"

	// Plain commands
	CmdAT               = "AT"
	CmdParams           = "AT+RX"
	CmdDefault          = "AT+DEFAULT"
	CmdVersion          = "AT+VERSION"
	CmdQueryRole        = "AT+ROLE=?"
	CmdQueryConnectable = "AT+CONT=?"
	CmdQueryName        = "AT+NAME=?"
	CmdClear            = "AT+CLEAR"

	// Command bases, completed with a payload
	RoleBase        = "AT+ROLE="
	ConnectableBase = "AT+CONT="
	NameBase        = "AT+NAME="
	AdvDataBase     = "AT+AVDA="
	IntervalBase    = "AT+CINT="
	TimeoutBase     = "AT+CTOUT="

	// Echoed replies
	IntervalReply = "OK+CINT="
	TimeoutReply  = "OK+CTOUT="

	// Reply line prefixes of AT+RX
	RolePrefix = "Role:"
	BaudPrefix = "Baud:"
	AddrPrefix = "Addr:"

	// Query replies
	MasterText         = "Master"
	SlaveText          = "Slave"
	ConnectableText    = "Connectable"
	NonConnectableText = "Non-Connectable"
)

// Fixed reply sizes.
const (
	// VersionSize is the length of the AT+VERSION reply.
	VersionSize = 21
	// ParamLines is the number of lines in the AT+RX reply.
	ParamLines = 8
	// MaxParamLine bounds a single AT+RX line, terminator included.
	MaxParamLine = 24
	// UUIDReplySize is the length of an OK+xUUID=hhhh reply.
	UUIDReplySize = 13
)
