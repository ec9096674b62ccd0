package format

import (
	"reflect"
	"testing"

	"github.com/arrowlake/parquet/arena"
)

func TestFileMetaDataRoundTrip(t *testing.T) {
	m := &FileMetaData{
		Version: 2,
		Schema: []SchemaElement{
			{Name: "root", HasNumChildren: true, NumChildren: 1},
			{
				Name: "id", HasType: true, Type: Int64,
				HasRepetition: true, RepetitionType: Required,
				HasFieldID: true, FieldID: 1,
				LogicalType: &LogicalType{Kind: LogicalInteger, IntBitWidth: 64, IntSigned: true},
			},
		},
		NumRows: 5,
		RowGroups: []RowGroup{
			{
				TotalByteSize: 100,
				NumRows:       5,
				HasFileOffset: true,
				FileOffset:    4,
				Columns: []ColumnChunk{
					{
						FileOffset: 4,
						HasMetaData: true,
						MetaData: ColumnMetaData{
							Type:                  Int64,
							Encodings:             []Encoding{Plain, RLE},
							PathInSchema:          []string{"id"},
							Codec:                 Snappy,
							NumValues:             5,
							TotalUncompressedSize: 40,
							TotalCompressedSize:   30,
							DataPageOffset:        4,
							HasStatistics:         true,
							Statistics: Statistics{
								HasNullCount: true, NullCount: 1,
								HasMin: true, Min: []byte{1, 0, 0, 0, 0, 0, 0, 0},
								HasMax: true, Max: []byte{5, 0, 0, 0, 0, 0, 0, 0},
							},
						},
					},
				},
			},
		},
		KeyValueMetadata: []KeyValue{{Key: "k", HasValue: true, Value: "v"}},
		HasCreatedBy:     true,
		CreatedBy:        "arrowlake-parquet",
	}

	buf := Marshal(m)
	a := arena.New()
	got, err := Unmarshal(buf, a)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Version != 2 || got.NumRows != 5 {
		t.Fatalf("scalar fields: %+v", got)
	}
	if len(got.Schema) != 2 || got.Schema[1].Name != "id" {
		t.Fatalf("schema: %+v", got.Schema)
	}
	if got.Schema[1].LogicalType == nil || got.Schema[1].LogicalType.Kind != LogicalInteger || got.Schema[1].LogicalType.IntBitWidth != 64 {
		t.Fatalf("logical type: %+v", got.Schema[1].LogicalType)
	}
	if len(got.RowGroups) != 1 || len(got.RowGroups[0].Columns) != 1 {
		t.Fatalf("row groups: %+v", got.RowGroups)
	}
	cm := got.RowGroups[0].Columns[0].MetaData
	if !reflect.DeepEqual(cm.Encodings, []Encoding{Plain, RLE}) {
		t.Fatalf("encodings: %v", cm.Encodings)
	}
	if cm.Statistics.NullCount != 1 || string(cm.Statistics.Min) != string([]byte{1, 0, 0, 0, 0, 0, 0, 0}) {
		t.Fatalf("statistics: %+v", cm.Statistics)
	}
	if got.KeyValueMetadata[0].Key != "k" || got.KeyValueMetadata[0].Value != "v" {
		t.Fatalf("kv metadata: %+v", got.KeyValueMetadata)
	}
	if got.CreatedBy != "arrowlake-parquet" {
		t.Fatalf("created_by: %q", got.CreatedBy)
	}
}

func TestLogicalTypeDecimalRoundTrip(t *testing.T) {
	m := &FileMetaData{
		Schema: []SchemaElement{
			{Name: "x", LogicalType: &LogicalType{Kind: LogicalDecimal, DecimalScale: 2, DecimalPrecision: 9}},
		},
	}
	buf := Marshal(m)
	got, err := Unmarshal(buf, arena.New())
	if err != nil {
		t.Fatal(err)
	}
	lt := got.Schema[0].LogicalType
	if lt == nil || lt.Kind != LogicalDecimal || lt.DecimalScale != 2 || lt.DecimalPrecision != 9 {
		t.Fatalf("decimal: %+v", lt)
	}
}

func TestLogicalTypeStringRoundTrip(t *testing.T) {
	m := &FileMetaData{
		Schema: []SchemaElement{{Name: "s", LogicalType: &LogicalType{Kind: LogicalString}}},
	}
	got, err := Unmarshal(Marshal(m), arena.New())
	if err != nil {
		t.Fatal(err)
	}
	if got.Schema[0].LogicalType.Kind != LogicalString {
		t.Fatalf("expected LogicalString, got %+v", got.Schema[0].LogicalType)
	}
}

func TestLogicalTypeTimestampRoundTrip(t *testing.T) {
	m := &FileMetaData{
		Schema: []SchemaElement{{
			Name: "ts",
			LogicalType: &LogicalType{
				Kind:                LogicalTimestamp,
				TimeIsAdjustedToUTC: true,
				TimeUnit:            Micros,
			},
		}},
	}
	got, err := Unmarshal(Marshal(m), arena.New())
	if err != nil {
		t.Fatal(err)
	}
	lt := got.Schema[0].LogicalType
	if lt == nil || lt.Kind != LogicalTimestamp || !lt.TimeIsAdjustedToUTC || lt.TimeUnit != Micros {
		t.Fatalf("timestamp: %+v", lt)
	}
}

func TestPageHeaderRoundTrip(t *testing.T) {
	h := &PageHeader{
		Type:                 DataPage,
		UncompressedPageSize: 100,
		CompressedPageSize:   80,
		HasCRC:               true,
		CRC:                  12345,
		HasDataPageHeader:    true,
		DataPageHeader: DataPageHeader{
			NumValues:               10,
			Encoding:                Plain,
			DefinitionLevelEncoding: RLE,
			RepetitionLevelEncoding: RLE,
		},
	}
	buf := MarshalPageHeader(h)
	got, n, err := UnmarshalPageHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Fatalf("consumed %d, want %d", n, len(buf))
	}
	if got.UncompressedPageSize != 100 || got.CRC != 12345 || got.DataPageHeader.NumValues != 10 {
		t.Fatalf("page header: %+v", got)
	}
}

func TestColumnIndexRoundTrip(t *testing.T) {
	idx := &ColumnIndex{
		NullPages:     []bool{false, true, false},
		MinValues:     [][]byte{{1}, nil, {3}},
		MaxValues:     [][]byte{{2}, nil, {4}},
		BoundaryOrder: Ascending,
		HasNullCounts: true,
		NullCounts:    []int64{0, 5, 0},
	}
	buf := MarshalColumnIndex(idx)
	got, err := UnmarshalColumnIndex(buf, arena.New())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.NullPages, idx.NullPages) {
		t.Fatalf("null pages: %v", got.NullPages)
	}
	if got.BoundaryOrder != Ascending {
		t.Fatalf("boundary order: %v", got.BoundaryOrder)
	}
	if got.NullCounts[1] != 5 {
		t.Fatalf("null counts: %v", got.NullCounts)
	}
}

func TestOffsetIndexRoundTrip(t *testing.T) {
	idx := &OffsetIndex{
		PageLocations: []PageLocation{
			{Offset: 4, CompressedPageSize: 100, FirstRowIndex: 0},
			{Offset: 104, CompressedPageSize: 90, FirstRowIndex: 50},
		},
	}
	buf := MarshalOffsetIndex(idx)
	got, err := UnmarshalOffsetIndex(buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.PageLocations) != 2 || got.PageLocations[1].FirstRowIndex != 50 {
		t.Fatalf("offset index: %+v", got.PageLocations)
	}
}

func TestSchemaElementCapEnforced(t *testing.T) {
	a := arena.New()
	// hand-build a minimal FileMetaData header announcing more schema
	// elements than MaxSchemaElements allows.
	buf := []byte{
		0x15, 0x04, // field 1 (version), i32
		0x29, // field 2 (schema), list
	}
	// list header: size forced long form with an absurd count
	buf = append(buf, 0xfc) // count>=15 marker, elem type 12 (struct)
	buf = append(buf, 0xa0, 0x9c, 0x01)
	if _, err := Unmarshal(buf, a); err == nil {
		t.Fatal("expected cap violation error")
	}
}
