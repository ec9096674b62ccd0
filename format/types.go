// Package format defines typed Go mirrors of the Parquet Thrift metadata
// structures (spec §3) together with their Thrift compact-protocol
// marshaling (spec §4.4). The wire shape follows the standard Parquet
// Thrift definitions field-for-field; unknown field ids are skipped on
// read so newer producers remain readable.
package format

// Type is the on-disk physical type of a leaf column.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// FieldRepetitionType is the schema-node repetition kind.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

// Encoding identifies a value encoding, per spec §6.
type Encoding int32

const (
	Plain Encoding = iota
	_              // GROUP_VAR_INT, deprecated and unused
	PlainDictionary
	RLE
	BitPacked
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
	RLEDictionary
	ByteStreamSplit
)

// CompressionCodec identifies a page compression codec, per spec §6.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = iota
	Snappy
	Gzip
	Lzo
	Brotli
	Lz4
	Zstd
	Lz4Raw
)

// PageType identifies the kind of page a PageHeader describes.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

// BoundaryOrder describes the sortedness of a column index's min values.
type BoundaryOrder int32

const (
	Unordered BoundaryOrder = iota
	Ascending
	Descending
)

// ConvertedType is the legacy (pre logical-type) annotation.
type ConvertedType int32

const (
	UTF8 ConvertedType = iota
	Map
	MapKeyValue
	List
	Enum
	Decimal
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32Ct
	Int64Ct
	JSON
	BSON
	Interval
)

// TimeUnit discriminates the unit carried by a TIME/TIMESTAMP logical type.
type TimeUnit int32

const (
	Millis TimeUnit = iota
	Micros
	Nanos
)

// LogicalType annotates a physical type with semantic meaning (spec §3).
// Kind selects the variant; only the field group commented with that variant
// (DECIMAL, TIME/TIMESTAMP or INTEGER) is meaningful, and other kinds use none.
type LogicalType struct {
	Kind LogicalTypeKind

	// DECIMAL
	DecimalScale     int32
	DecimalPrecision int32

	// TIME / TIMESTAMP
	TimeIsAdjustedToUTC bool
	TimeUnit            TimeUnit

	// INTEGER
	IntBitWidth int8
	IntSigned   bool
}

// LogicalTypeKind enumerates the logical type variants of spec §3.
type LogicalTypeKind int32

const (
	LogicalNone LogicalTypeKind = iota
	LogicalString
	LogicalMap
	LogicalList
	LogicalEnum
	LogicalDecimal
	LogicalDate
	LogicalTime
	LogicalTimestamp
	LogicalInteger
	LogicalUnknown
	LogicalJSON
	LogicalBSON
	LogicalUUID
	LogicalFloat16
)

// SchemaElement is one node of the schema tree (spec §3).
type SchemaElement struct {
	Type           Type
	TypeLength     int32
	HasType        bool
	HasTypeLength  bool
	RepetitionType FieldRepetitionType
	HasRepetition  bool
	Name           string
	NumChildren    int32
	HasNumChildren bool
	ConvertedType  ConvertedType
	HasConverted   bool
	Scale          int32
	HasScale       bool
	Precision      int32
	HasPrecision   bool
	FieldID        int32
	HasFieldID     bool
	LogicalType    *LogicalType
}

// Statistics carries optional per-column min/max/null/distinct summaries
// (spec §3). Min/Max are opaque bytes in the column's physical
// encoding; MinExact/MaxExact record whether they are exact bounds.
type Statistics struct {
	HasNullCount    bool
	NullCount       int64
	HasDistinct     bool
	DistinctCount   int64
	HasMin          bool
	Min             []byte
	HasMax          bool
	Max             []byte
	MinExact        bool
	MaxExact        bool
	HasMinExact     bool
	HasMaxExact     bool
}

// KeyValue is one entry of a FileMetaData key/value metadata map.
type KeyValue struct {
	Key      string
	Value    string
	HasValue bool
}

// SortingColumn records one column of a row group's sort order.
type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

// PageEncodingStats summarizes how many pages of a given type used a given
// encoding, within one column chunk.
type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

// ColumnMetaData is the per-column-chunk metadata (spec §3).
type ColumnMetaData struct {
	Type                  Type
	Encodings             []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	HasDictionaryOffset   bool
	DictionaryPageOffset  int64
	HasStatistics         bool
	Statistics            Statistics
	EncodingStats         []PageEncodingStats
	HasBloomFilterOffset  bool
	BloomFilterOffset     int64
	HasBloomFilterLength  bool
	BloomFilterLength     int32
}

// ColumnChunk is one column's storage location within a row group (spec §3).
type ColumnChunk struct {
	HasFilePath        bool
	FilePath           string
	FileOffset         int64
	HasMetaData        bool
	MetaData           ColumnMetaData
	HasColumnIndexOff  bool
	ColumnIndexOffset  int64
	HasColumnIndexLen  bool
	ColumnIndexLength  int32
	HasOffsetIndexOff  bool
	OffsetIndexOffset  int64
	HasOffsetIndexLen  bool
	OffsetIndexLength  int32
}

// RowGroup is one horizontal partition of a file (spec §3).
type RowGroup struct {
	Columns              []ColumnChunk
	TotalByteSize        int64
	NumRows              int64
	SortingColumns       []SortingColumn
	HasFileOffset        bool
	FileOffset           int64
	HasTotalCompressed   bool
	TotalCompressedSize  int64
	HasOrdinal           bool
	Ordinal              int16
}

// FileMetaData is the root footer structure (spec §3).
type FileMetaData struct {
	Version          int32
	Schema           []SchemaElement
	NumRows          int64
	RowGroups        []RowGroup
	KeyValueMetadata []KeyValue
	HasCreatedBy     bool
	CreatedBy        string
}

// DataPageHeader is the v1 data page header.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	HasStatistics           bool
	Statistics              Statistics
}

// DataPageHeaderV2 is the v2 data page header; levels are never compressed
// and their byte lengths are carried explicitly (spec §4.7).
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               bool
	HasIsCompressed            bool
	HasStatistics              bool
	Statistics                 Statistics
}

// DictionaryPageHeader describes a dictionary page.
type DictionaryPageHeader struct {
	NumValues  int32
	Encoding   Encoding
	HasIsSorted bool
	IsSorted   bool
}

// PageHeader is the envelope preceding every page body (spec §3).
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	HasCRC               bool
	CRC                  int32

	HasDataPageHeader       bool
	DataPageHeader          DataPageHeader
	HasDataPageHeaderV2     bool
	DataPageHeaderV2        DataPageHeaderV2
	HasDictionaryPageHeader bool
	DictionaryPageHeader    DictionaryPageHeader
}

// PageLocation is one entry of an OffsetIndex (spec §4.11).
type PageLocation struct {
	Offset             int64
	CompressedPageSize int32
	FirstRowIndex      int64
}

// OffsetIndex records absolute file offsets for every page of a column
// chunk (spec §4.11).
type OffsetIndex struct {
	PageLocations []PageLocation
}

// ColumnIndex records per-page null/min/max summaries for a column chunk
// (spec §4.11).
type ColumnIndex struct {
	NullPages     []bool
	MinValues     [][]byte
	MaxValues     [][]byte
	BoundaryOrder BoundaryOrder
	NullCounts    []int64
	HasNullCounts bool
}
