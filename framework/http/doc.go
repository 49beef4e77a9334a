// Package http provides the JSON response helpers used by the inspect
// endpoints.
//
//	res := gohttp.NewResponse(w)
//
//	res.JSON(200, data)         // raw JSON with status
//	res.Success(data)           // 200 {"data": ...}
//	res.Error(400, "bad input") // {"message": "bad input"}
//	res.NotFound()              // 404 {"message": "Not found."}
//	res.ServerError()           // 500 {"message": "Server Error."}
package http
