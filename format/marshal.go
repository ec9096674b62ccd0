package format

import "github.com/arrowlake/parquet/internal/thriftcompact"

// Marshal serializes m as a Thrift compact-protocol struct, emitting fields
// in id order and omitting optional fields whose Has* flag is false (spec
// §4.4). The serializer never fails: every value here is already validated
// Go data.
func Marshal(m *FileMetaData) []byte {
	e := thriftcompact.NewEncoder()
	writeFileMetaData(e, m)
	return e.Bytes()
}

func writeFileMetaData(e *thriftcompact.Encoder, m *FileMetaData) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(m.Version)

	e.WriteFieldHeader(2, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeStruct, len(m.Schema))
	for i := range m.Schema {
		writeSchemaElement(e, &m.Schema[i])
	}

	e.WriteFieldHeader(3, thriftcompact.TypeI64)
	e.WriteI64(m.NumRows)

	e.WriteFieldHeader(4, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeStruct, len(m.RowGroups))
	for i := range m.RowGroups {
		writeRowGroup(e, &m.RowGroups[i])
	}

	if len(m.KeyValueMetadata) > 0 {
		e.WriteFieldHeader(5, thriftcompact.TypeList)
		e.WriteListBegin(thriftcompact.TypeStruct, len(m.KeyValueMetadata))
		for i := range m.KeyValueMetadata {
			writeKeyValue(e, &m.KeyValueMetadata[i])
		}
	}

	if m.HasCreatedBy {
		e.WriteFieldHeader(6, thriftcompact.TypeBinary)
		e.WriteString(m.CreatedBy)
	}

	e.WriteStructEnd()
}

func writeSchemaElement(e *thriftcompact.Encoder, s *SchemaElement) {
	e.WriteStructBegin()
	if s.HasType {
		e.WriteFieldHeader(1, thriftcompact.TypeI32)
		e.WriteI32(int32(s.Type))
	}
	if s.HasTypeLength {
		e.WriteFieldHeader(2, thriftcompact.TypeI32)
		e.WriteI32(s.TypeLength)
	}
	if s.HasRepetition {
		e.WriteFieldHeader(3, thriftcompact.TypeI32)
		e.WriteI32(int32(s.RepetitionType))
	}
	e.WriteFieldHeader(4, thriftcompact.TypeBinary)
	e.WriteString(s.Name)
	if s.HasNumChildren {
		e.WriteFieldHeader(5, thriftcompact.TypeI32)
		e.WriteI32(s.NumChildren)
	}
	if s.HasConverted {
		e.WriteFieldHeader(6, thriftcompact.TypeI32)
		e.WriteI32(int32(s.ConvertedType))
	}
	if s.HasScale {
		e.WriteFieldHeader(7, thriftcompact.TypeI32)
		e.WriteI32(s.Scale)
	}
	if s.HasPrecision {
		e.WriteFieldHeader(8, thriftcompact.TypeI32)
		e.WriteI32(s.Precision)
	}
	if s.HasFieldID {
		e.WriteFieldHeader(9, thriftcompact.TypeI32)
		e.WriteI32(s.FieldID)
	}
	if s.LogicalType != nil {
		e.WriteFieldHeader(10, thriftcompact.TypeStruct)
		writeLogicalType(e, s.LogicalType)
	}
	e.WriteStructEnd()
}

func writeLogicalType(e *thriftcompact.Encoder, lt *LogicalType) {
	e.WriteStructBegin()
	switch lt.Kind {
	case LogicalString:
		e.WriteFieldHeader(1, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalMap:
		e.WriteFieldHeader(2, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalList:
		e.WriteFieldHeader(3, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalEnum:
		e.WriteFieldHeader(4, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalDecimal:
		e.WriteFieldHeader(5, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteFieldHeader(1, thriftcompact.TypeI32)
		e.WriteI32(lt.DecimalScale)
		e.WriteFieldHeader(2, thriftcompact.TypeI32)
		e.WriteI32(lt.DecimalPrecision)
		e.WriteStructEnd()
	case LogicalDate:
		e.WriteFieldHeader(6, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalTime:
		e.WriteFieldHeader(7, thriftcompact.TypeStruct)
		writeTimeOrTimestamp(e, lt)
	case LogicalTimestamp:
		e.WriteFieldHeader(8, thriftcompact.TypeStruct)
		writeTimeOrTimestamp(e, lt)
	case LogicalInteger:
		e.WriteFieldHeader(10, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteFieldHeader(1, thriftcompact.TypeByte)
		e.WriteByte(byte(lt.IntBitWidth))
		e.WriteBoolField(2, lt.IntSigned)
		e.WriteStructEnd()
	case LogicalUnknown:
		e.WriteFieldHeader(11, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalJSON:
		e.WriteFieldHeader(12, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalBSON:
		e.WriteFieldHeader(13, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalUUID:
		e.WriteFieldHeader(14, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	case LogicalFloat16:
		e.WriteFieldHeader(15, thriftcompact.TypeStruct)
		e.WriteStructBegin()
		e.WriteStructEnd()
	}
	e.WriteStructEnd()
}

// writeTimeOrTimestamp writes the shared {isAdjustedToUTC, unit} shape of
// TimeType/TimestampType; unit is itself a one-of-three empty-struct union.
func writeTimeOrTimestamp(e *thriftcompact.Encoder, lt *LogicalType) {
	e.WriteStructBegin()
	e.WriteBoolField(1, lt.TimeIsAdjustedToUTC)
	e.WriteFieldHeader(2, thriftcompact.TypeStruct)
	e.WriteStructBegin()
	switch lt.TimeUnit {
	case Millis:
		e.WriteFieldHeader(1, thriftcompact.TypeStruct)
	case Micros:
		e.WriteFieldHeader(2, thriftcompact.TypeStruct)
	case Nanos:
		e.WriteFieldHeader(3, thriftcompact.TypeStruct)
	}
	e.WriteStructBegin()
	e.WriteStructEnd()
	e.WriteStructEnd()
	e.WriteStructEnd()
}

func writeRowGroup(e *thriftcompact.Encoder, g *RowGroup) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeStruct, len(g.Columns))
	for i := range g.Columns {
		writeColumnChunk(e, &g.Columns[i])
	}
	e.WriteFieldHeader(2, thriftcompact.TypeI64)
	e.WriteI64(g.TotalByteSize)
	e.WriteFieldHeader(3, thriftcompact.TypeI64)
	e.WriteI64(g.NumRows)
	if len(g.SortingColumns) > 0 {
		e.WriteFieldHeader(4, thriftcompact.TypeList)
		e.WriteListBegin(thriftcompact.TypeStruct, len(g.SortingColumns))
		for i := range g.SortingColumns {
			writeSortingColumn(e, &g.SortingColumns[i])
		}
	}
	if g.HasFileOffset {
		e.WriteFieldHeader(5, thriftcompact.TypeI64)
		e.WriteI64(g.FileOffset)
	}
	if g.HasTotalCompressed {
		e.WriteFieldHeader(6, thriftcompact.TypeI64)
		e.WriteI64(g.TotalCompressedSize)
	}
	if g.HasOrdinal {
		e.WriteFieldHeader(7, thriftcompact.TypeI16)
		e.WriteI16(g.Ordinal)
	}
	e.WriteStructEnd()
}

func writeSortingColumn(e *thriftcompact.Encoder, s *SortingColumn) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(s.ColumnIdx)
	e.WriteBoolField(2, s.Descending)
	e.WriteBoolField(3, s.NullsFirst)
	e.WriteStructEnd()
}

func writeColumnChunk(e *thriftcompact.Encoder, c *ColumnChunk) {
	e.WriteStructBegin()
	if c.HasFilePath {
		e.WriteFieldHeader(1, thriftcompact.TypeBinary)
		e.WriteString(c.FilePath)
	}
	e.WriteFieldHeader(2, thriftcompact.TypeI64)
	e.WriteI64(c.FileOffset)
	if c.HasMetaData {
		e.WriteFieldHeader(3, thriftcompact.TypeStruct)
		writeColumnMetaData(e, &c.MetaData)
	}
	if c.HasOffsetIndexOff {
		e.WriteFieldHeader(4, thriftcompact.TypeI64)
		e.WriteI64(c.OffsetIndexOffset)
	}
	if c.HasOffsetIndexLen {
		e.WriteFieldHeader(5, thriftcompact.TypeI32)
		e.WriteI32(c.OffsetIndexLength)
	}
	if c.HasColumnIndexOff {
		e.WriteFieldHeader(6, thriftcompact.TypeI64)
		e.WriteI64(c.ColumnIndexOffset)
	}
	if c.HasColumnIndexLen {
		e.WriteFieldHeader(7, thriftcompact.TypeI32)
		e.WriteI32(c.ColumnIndexLength)
	}
	e.WriteStructEnd()
}

func writeColumnMetaData(e *thriftcompact.Encoder, m *ColumnMetaData) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(int32(m.Type))

	e.WriteFieldHeader(2, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeI32, len(m.Encodings))
	for _, enc := range m.Encodings {
		e.WriteI32(int32(enc))
	}

	e.WriteFieldHeader(3, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeBinary, len(m.PathInSchema))
	for _, p := range m.PathInSchema {
		e.WriteString(p)
	}

	e.WriteFieldHeader(4, thriftcompact.TypeI32)
	e.WriteI32(int32(m.Codec))
	e.WriteFieldHeader(5, thriftcompact.TypeI64)
	e.WriteI64(m.NumValues)
	e.WriteFieldHeader(6, thriftcompact.TypeI64)
	e.WriteI64(m.TotalUncompressedSize)
	e.WriteFieldHeader(7, thriftcompact.TypeI64)
	e.WriteI64(m.TotalCompressedSize)

	if len(m.KeyValueMetadata) > 0 {
		e.WriteFieldHeader(8, thriftcompact.TypeList)
		e.WriteListBegin(thriftcompact.TypeStruct, len(m.KeyValueMetadata))
		for i := range m.KeyValueMetadata {
			writeKeyValue(e, &m.KeyValueMetadata[i])
		}
	}

	e.WriteFieldHeader(9, thriftcompact.TypeI64)
	e.WriteI64(m.DataPageOffset)

	if m.HasDictionaryOffset {
		e.WriteFieldHeader(11, thriftcompact.TypeI64)
		e.WriteI64(m.DictionaryPageOffset)
	}
	if m.HasStatistics {
		e.WriteFieldHeader(12, thriftcompact.TypeStruct)
		writeStatistics(e, &m.Statistics)
	}
	if len(m.EncodingStats) > 0 {
		e.WriteFieldHeader(13, thriftcompact.TypeList)
		e.WriteListBegin(thriftcompact.TypeStruct, len(m.EncodingStats))
		for i := range m.EncodingStats {
			writePageEncodingStats(e, &m.EncodingStats[i])
		}
	}
	if m.HasBloomFilterOffset {
		e.WriteFieldHeader(14, thriftcompact.TypeI64)
		e.WriteI64(m.BloomFilterOffset)
	}
	if m.HasBloomFilterLength {
		e.WriteFieldHeader(15, thriftcompact.TypeI32)
		e.WriteI32(m.BloomFilterLength)
	}
	e.WriteStructEnd()
}

func writePageEncodingStats(e *thriftcompact.Encoder, s *PageEncodingStats) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(int32(s.PageType))
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(int32(s.Encoding))
	e.WriteFieldHeader(3, thriftcompact.TypeI32)
	e.WriteI32(s.Count)
	e.WriteStructEnd()
}

func writeKeyValue(e *thriftcompact.Encoder, kv *KeyValue) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeBinary)
	e.WriteString(kv.Key)
	if kv.HasValue {
		e.WriteFieldHeader(2, thriftcompact.TypeBinary)
		e.WriteString(kv.Value)
	}
	e.WriteStructEnd()
}

func writeStatistics(e *thriftcompact.Encoder, s *Statistics) {
	e.WriteStructBegin()
	if s.HasNullCount {
		e.WriteFieldHeader(3, thriftcompact.TypeI64)
		e.WriteI64(s.NullCount)
	}
	if s.HasDistinct {
		e.WriteFieldHeader(4, thriftcompact.TypeI64)
		e.WriteI64(s.DistinctCount)
	}
	if s.HasMax {
		e.WriteFieldHeader(5, thriftcompact.TypeBinary)
		e.WriteBinary(s.Max)
	}
	if s.HasMin {
		e.WriteFieldHeader(6, thriftcompact.TypeBinary)
		e.WriteBinary(s.Min)
	}
	if s.HasMaxExact {
		e.WriteBoolField(7, s.MaxExact)
	}
	if s.HasMinExact {
		e.WriteBoolField(8, s.MinExact)
	}
	e.WriteStructEnd()
}

// MarshalPageHeader serializes a PageHeader.
func MarshalPageHeader(h *PageHeader) []byte {
	e := thriftcompact.NewEncoder()
	writePageHeader(e, h)
	return e.Bytes()
}

func writePageHeader(e *thriftcompact.Encoder, h *PageHeader) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(int32(h.Type))
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(h.UncompressedPageSize)
	e.WriteFieldHeader(3, thriftcompact.TypeI32)
	e.WriteI32(h.CompressedPageSize)
	if h.HasCRC {
		e.WriteFieldHeader(4, thriftcompact.TypeI32)
		e.WriteI32(h.CRC)
	}
	if h.HasDataPageHeader {
		e.WriteFieldHeader(5, thriftcompact.TypeStruct)
		writeDataPageHeader(e, &h.DataPageHeader)
	}
	if h.HasDictionaryPageHeader {
		e.WriteFieldHeader(7, thriftcompact.TypeStruct)
		writeDictionaryPageHeader(e, &h.DictionaryPageHeader)
	}
	if h.HasDataPageHeaderV2 {
		e.WriteFieldHeader(8, thriftcompact.TypeStruct)
		writeDataPageHeaderV2(e, &h.DataPageHeaderV2)
	}
	e.WriteStructEnd()
}

func writeDataPageHeader(e *thriftcompact.Encoder, h *DataPageHeader) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(h.NumValues)
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(int32(h.Encoding))
	e.WriteFieldHeader(3, thriftcompact.TypeI32)
	e.WriteI32(int32(h.DefinitionLevelEncoding))
	e.WriteFieldHeader(4, thriftcompact.TypeI32)
	e.WriteI32(int32(h.RepetitionLevelEncoding))
	if h.HasStatistics {
		e.WriteFieldHeader(5, thriftcompact.TypeStruct)
		writeStatistics(e, &h.Statistics)
	}
	e.WriteStructEnd()
}

func writeDataPageHeaderV2(e *thriftcompact.Encoder, h *DataPageHeaderV2) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(h.NumValues)
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(h.NumNulls)
	e.WriteFieldHeader(3, thriftcompact.TypeI32)
	e.WriteI32(h.NumRows)
	e.WriteFieldHeader(4, thriftcompact.TypeI32)
	e.WriteI32(int32(h.Encoding))
	e.WriteFieldHeader(5, thriftcompact.TypeI32)
	e.WriteI32(h.DefinitionLevelsByteLength)
	e.WriteFieldHeader(6, thriftcompact.TypeI32)
	e.WriteI32(h.RepetitionLevelsByteLength)
	e.WriteBoolField(7, h.IsCompressed)
	if h.HasStatistics {
		e.WriteFieldHeader(8, thriftcompact.TypeStruct)
		writeStatistics(e, &h.Statistics)
	}
	e.WriteStructEnd()
}

func writeDictionaryPageHeader(e *thriftcompact.Encoder, h *DictionaryPageHeader) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI32)
	e.WriteI32(h.NumValues)
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(int32(h.Encoding))
	if h.HasIsSorted {
		e.WriteBoolField(3, h.IsSorted)
	}
	e.WriteStructEnd()
}

// MarshalColumnIndex serializes a ColumnIndex.
func MarshalColumnIndex(idx *ColumnIndex) []byte {
	e := thriftcompact.NewEncoder()
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeBoolTrue, len(idx.NullPages))
	for _, v := range idx.NullPages {
		e.WriteBool(v)
	}
	e.WriteFieldHeader(2, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeBinary, len(idx.MinValues))
	for _, v := range idx.MinValues {
		e.WriteBinary(v)
	}
	e.WriteFieldHeader(3, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeBinary, len(idx.MaxValues))
	for _, v := range idx.MaxValues {
		e.WriteBinary(v)
	}
	e.WriteFieldHeader(4, thriftcompact.TypeI32)
	e.WriteI32(int32(idx.BoundaryOrder))
	if idx.HasNullCounts {
		e.WriteFieldHeader(5, thriftcompact.TypeList)
		e.WriteListBegin(thriftcompact.TypeI64, len(idx.NullCounts))
		for _, v := range idx.NullCounts {
			e.WriteI64(v)
		}
	}
	e.WriteStructEnd()
	return e.Bytes()
}

// MarshalOffsetIndex serializes an OffsetIndex.
func MarshalOffsetIndex(idx *OffsetIndex) []byte {
	e := thriftcompact.NewEncoder()
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeList)
	e.WriteListBegin(thriftcompact.TypeStruct, len(idx.PageLocations))
	for i := range idx.PageLocations {
		writePageLocation(e, &idx.PageLocations[i])
	}
	e.WriteStructEnd()
	return e.Bytes()
}

func writePageLocation(e *thriftcompact.Encoder, p *PageLocation) {
	e.WriteStructBegin()
	e.WriteFieldHeader(1, thriftcompact.TypeI64)
	e.WriteI64(p.Offset)
	e.WriteFieldHeader(2, thriftcompact.TypeI32)
	e.WriteI32(p.CompressedPageSize)
	e.WriteFieldHeader(3, thriftcompact.TypeI64)
	e.WriteI64(p.FirstRowIndex)
	e.WriteStructEnd()
}
