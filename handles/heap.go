package handles

// StringHandle is a byte offset into the #Strings heap. 0 is the empty string.
type StringHandle uint32

// BlobHandle is a byte offset into the #Blob heap. 0 is the empty blob.
type BlobHandle uint32

// GuidHandle is a 1-based index into the #GUID heap. 0 is the nil GUID.
type GuidHandle uint32

func (h StringHandle) IsNil() bool { return h == 0 }
func (h BlobHandle) IsNil() bool   { return h == 0 }
func (h GuidHandle) IsNil() bool   { return h == 0 }
