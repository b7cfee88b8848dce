package apiconnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblioteca/pkg/api"
)

func TestJSONCodecUsesWireNames(t *testing.T) {
	title := "Dom Casmurro"
	data, err := jsonCodec{}.Marshal(&api.UpdateBookRequest{ID: 3, BookFields: api.BookFields{Title: &title}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"titulo":"Dom Casmurro"}`, string(data))

	var req api.UpdateBookRequest
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"id":3,"descricao":null,"data_publicacao":"2020-01-01"}`), &req))
	assert.Nil(t, req.Description)
	require.NotNil(t, req.PublicationDate)
	assert.Equal(t, "2020-01-01", *req.PublicationDate)

	assert.NoError(t, jsonCodec{}.Unmarshal(nil, &req), "an empty body decodes to the zero message")
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/biblioteca.v1.BookService/", servicePath(BookServiceName))
	assert.Equal(t, "http://localhost:8080/biblioteca.v1.LoanService/GetLoan",
		procedureURL("http://localhost:8080/", LoanServiceGetLoanProcedure))
}
