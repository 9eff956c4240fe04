package modbus

// ValidateHeader checks the MBAP header of a reply against the request's
// header per spec §4.5 step 2: protocol id must be zero and the transaction
// id must match.
func ValidateHeader(reqHeader, respHeader Header) error {
	if respHeader.ProtocolID != ProtocolIDTCP || respHeader.TransactionID != reqHeader.TransactionID {
		return ErrInvalidResponse()
	}
	return nil
}

// ValidateFunctionCode checks the function-code byte of a reply (the 8th
// byte of the frame, index 7) against the request's function code, per
// spec §4.5 step 3. An exception response (requestCode | 0x80) is decoded
// into an Error of Kind Exception.
func ValidateFunctionCode(reqFrame, respFrame []byte) error {
	if len(reqFrame) <= 7 || len(respFrame) <= 7 {
		return ErrInvalidResponse()
	}
	reqCode := reqFrame[7]
	respCode := respFrame[7]

	if respCode == reqCode|0x80 {
		if len(respFrame) <= 8 {
			return ErrInvalidResponse()
		}
		return ErrException(ExceptionCode(respFrame[8]))
	}
	if respCode != reqCode {
		return ErrInvalidResponse()
	}
	return nil
}

// DecodeReadReply extracts and decodes a Read reply payload (spec §4.5 step
// 4): the byte count at offset 8 must equal expectedReplyBytes, the total
// frame length must match HeaderSize+expected+2, and the payload window
// [9:] is decoded via the type matrix.
func DecodeReadReply(respFrame []byte, dt DataType, expectedReplyBytes int) (DataValue, error) {
	if len(respFrame) <= 8 {
		return DataValue{}, ErrInvalidData(ReasonUnexpectedReplySize)
	}
	byteCount := int(respFrame[8])
	if byteCount != expectedReplyBytes || len(respFrame) != HeaderSize+expectedReplyBytes+2 {
		return DataValue{}, ErrInvalidData(ReasonUnexpectedReplySize)
	}
	payload := respFrame[HeaderSize+2:]
	return DecodeDataValue(dt, payload)
}

// DecodeFeedbackReply extracts the payload region of a Feedback reply and
// decodes one DataValue per read frame, in the order the frames were given
// to ComposeFeedback. Write frames contribute no payload bytes. Unlike a
// Read reply, a Feedback reply carries no byte-count field: the payload
// begins immediately after the function code.
func DecodeFeedbackReply(respFrame []byte, frames []FeedbackFrame, expectedReplyBytes int) ([]DataValue, error) {
	if len(respFrame) != HeaderSize+expectedReplyBytes {
		return nil, ErrInvalidData(ReasonUnexpectedReplySize)
	}
	// respFrame[HeaderSize] is the function code; the read payloads follow
	// contiguously starting right after it.
	offset := HeaderSize + 1
	values := make([]DataValue, 0, len(frames))
	for _, f := range frames {
		if f.isWrite() {
			continue
		}
		n := f.Register.DataType.sizeBytes()
		if offset+n > len(respFrame) {
			return nil, ErrInvalidData(ReasonUnexpectedReplySize)
		}
		v, err := DecodeDataValue(f.Register.DataType, respFrame[offset:offset+n])
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		offset += n
	}
	return values, nil
}
