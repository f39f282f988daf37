/*
	Adding to the Connector

	The Connector defines how the REST routes reach the stored resources.
	Each method takes the request context and, for single-document
	operations, the id exactly as it appeared in the URL.

	To add to the Connector, add the method signature to the interface in
	data/data.go, then add the database backed implementation to
	DBConnector and an in-memory implementation to MockConnector. Keep
	query construction in the model packages; the connector only parses
	ids, checks that the store is reachable and translates errors into
	gimlet.ErrorResponse values carrying the HTTP status.
*/
package data
