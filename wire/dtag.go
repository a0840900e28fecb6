package wire

import "strconv"

// DTag is a dictionary tag: a protocol-registry-assigned integer naming the
// type of a composite element. The registry is shared protocol-wide and
// immutable; values here are the subset this repository speaks.
type DTag uint64

const (
	DTagAny                              DTag = 13
	DTagName                             DTag = 14
	DTagComponent                        DTag = 15
	DTagCertificate                      DTag = 16
	DTagContent                          DTag = 19
	DTagSignedInfo                       DTag = 20
	DTagContentDigest                    DTag = 21
	DTagInterest                         DTag = 26
	DTagKey                              DTag = 27
	DTagKeyLocator                       DTag = 28
	DTagKeyName                          DTag = 29
	DTagSignature                        DTag = 37
	DTagTimestamp                        DTag = 39
	DTagType                             DTag = 40
	DTagNonce                            DTag = 41
	DTagWitness                          DTag = 53
	DTagSignatureBits                    DTag = 54
	DTagDigestAlgorithm                  DTag = 55
	DTagFreshnessSeconds                 DTag = 58
	DTagFinalBlockID                     DTag = 59
	DTagPublisherPublicKeyDigest         DTag = 60
	DTagPublisherCertificateDigest       DTag = 61
	DTagPublisherIssuerKeyDigest         DTag = 62
	DTagPublisherIssuerCertificateDigest DTag = 63
	DTagContentObject                    DTag = 64
)

var dtagNames = map[DTag]string{
	DTagAny:                              "Any",
	DTagName:                             "Name",
	DTagComponent:                        "Component",
	DTagCertificate:                      "Certificate",
	DTagContent:                          "Content",
	DTagSignedInfo:                       "SignedInfo",
	DTagContentDigest:                    "ContentDigest",
	DTagInterest:                         "Interest",
	DTagKey:                              "Key",
	DTagKeyLocator:                       "KeyLocator",
	DTagKeyName:                          "KeyName",
	DTagSignature:                        "Signature",
	DTagTimestamp:                        "Timestamp",
	DTagType:                             "Type",
	DTagNonce:                            "Nonce",
	DTagWitness:                          "Witness",
	DTagSignatureBits:                    "SignatureBits",
	DTagDigestAlgorithm:                  "DigestAlgorithm",
	DTagFreshnessSeconds:                 "FreshnessSeconds",
	DTagFinalBlockID:                     "FinalBlockID",
	DTagPublisherPublicKeyDigest:         "PublisherPublicKeyDigest",
	DTagPublisherCertificateDigest:       "PublisherCertificateDigest",
	DTagPublisherIssuerKeyDigest:         "PublisherIssuerKeyDigest",
	DTagPublisherIssuerCertificateDigest: "PublisherIssuerCertificateDigest",
	DTagContentObject:                    "ContentObject",
}

// String returns the registry name, or the numeric value for tags outside
// the subset this repository names.
func (d DTag) String() string {
	if name, ok := dtagNames[d]; ok {
		return name
	}
	return strconv.FormatUint(uint64(d), 10)
}
