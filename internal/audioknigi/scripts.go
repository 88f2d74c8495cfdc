package audioknigi

import "fmt"

// The site loads its chapter playlist through an AJAX call that only
// fires once the in-page audio player is initialized. The payload is
// consumed silently by the player, so the hook below intercepts every
// jQuery AJAX success, picks out the playlist request by its URL
// fragment, and republishes the chapter list as the text of a marker
// element that replaces the page body. Both sides of this contract
// (the audioPlayer entry point and the "ajax/bid" URL fragment) belong
// to the site and can change under us.

// ajaxSuccessHook republishes the playlist payload into #playlist.
const ajaxSuccessHook = `
(function() {
    $(document).ajaxSuccess(function(event, xhr, opt) {
        if (opt.url.indexOf('ajax/bid') !== -1) {
            $('body').html($('<div />', {
                id: 'playlist',
                text: JSON.parse(xhr.responseText).aItems
            }));
        }
    });
})();
`

// playlistSelector matches the marker element created by the hook.
const playlistSelector = "#playlist"

// initPlayerScript returns the script that triggers the playlist AJAX
// call by initializing the site's player for the given book id at
// offset zero.
func initPlayerScript(bookID string) string {
	return fmt.Sprintf("void $(document).audioPlayer(%s, 0);", bookID)
}
